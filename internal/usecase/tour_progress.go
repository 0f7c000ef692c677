package usecase

import (
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/tour-navigation/internal/domain"
)

// TourProgress - машина состояний прохождения тура.
// Переходы не возвращают ошибок: пустой список остановок даёт
// инертное состояние, а не отказ.
type TourProgress struct {
	Waypoints []domain.Waypoint
	Visited   map[uuid.UUID]struct{}
	Current   *domain.Waypoint
	Next      *domain.Waypoint
	Phase     domain.TourPhase
}

func NewTourProgress() *TourProgress {
	return &TourProgress{
		Visited: make(map[uuid.UUID]struct{}),
		Phase:   domain.PhaseNotStarted,
	}
}

// Initialize сортирует остановки по порядку, восстанавливает посещённые
// и вычисляет текущую/следующую. NotStarted сохраняется только при
// пустом списке остановок.
func (p *TourProgress) Initialize(waypoints []domain.Waypoint, visited []uuid.UUID) {
	p.Waypoints = make([]domain.Waypoint, len(waypoints))
	copy(p.Waypoints, waypoints)
	sort.Slice(p.Waypoints, func(i, j int) bool {
		return p.Waypoints[i].Order < p.Waypoints[j].Order
	})

	p.Visited = make(map[uuid.UUID]struct{}, len(visited))
	for _, id := range visited {
		p.Visited[id] = struct{}{}
	}

	if len(p.Waypoints) == 0 {
		p.Current = nil
		p.Next = nil
		p.Phase = domain.PhaseNotStarted
		return
	}

	p.recompute()
	if p.Current != nil {
		p.Phase = domain.PhaseEnRoute
	} else {
		p.Phase = domain.PhaseCompleted
	}
}

// MarkCurrentVisited отмечает текущую остановку посещённой и переводит
// машину в AtLocation. Идемпотентно для уже посещённой остановки.
func (p *TourProgress) MarkCurrentVisited() {
	if p.Current == nil {
		return
	}

	p.Visited[p.Current.ID] = struct{}{}
	p.Phase = domain.PhaseAtLocation
}

// Advance пересчитывает текущую/следующую остановку после посещения
func (p *TourProgress) Advance() {
	if len(p.Waypoints) == 0 {
		return
	}

	p.recompute()
	if p.Current != nil {
		p.Phase = domain.PhaseEnRoute
	} else {
		p.Phase = domain.PhaseCompleted
	}
}

// Completion возвращает процент прохождения (0-100)
func (p *TourProgress) Completion() int {
	if len(p.Waypoints) == 0 {
		return 0
	}
	return int(math.Round(100.0 * float64(len(p.Visited)) / float64(len(p.Waypoints))))
}

// recompute - текущая остановка это первая непосещённая по порядку,
// следующая - вторая непосещённая
func (p *TourProgress) recompute() {
	p.Current = nil
	p.Next = nil

	for i := range p.Waypoints {
		if _, ok := p.Visited[p.Waypoints[i].ID]; ok {
			continue
		}
		if p.Current == nil {
			p.Current = &p.Waypoints[i]
		} else {
			p.Next = &p.Waypoints[i]
			break
		}
	}
}
