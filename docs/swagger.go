// Package docs Tour Navigation Service API.
//
// Сервис пешеходной навигации по турам. Строит маршруты между
// остановками тура, ведёт пользователя по маршруту в реальном времени
// и отслеживает прогресс прохождения тура.
//
// Основные возможности:
// - Получение пешего маршрута между двумя точками (offline движок, OSRM зеркала, синтетический fallback)
// - Навигационные сессии: живые обновления позиции и навигационные кадры
// - Детекция схода с маршрута и фоновый перезапрос маршрута
// - Прогресс прохождения тура: остановки, посещения, процент завершения
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
