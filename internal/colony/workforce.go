package colony

import "github.com/napolitain/homebound/internal/models"

// Pool is an (available, total) pair for one worker category
type Pool struct {
	Available int `json:"available"`
	Total     int `json:"total"`
}

// Workforce tracks the colony's workers. Engineers and scientists fill job slots;
// pilots are a plain counter.
type Workforce struct {
	Engineers  Pool `json:"engineers"`
	Scientists Pool `json:"scientists"`
	Pilots     int  `json:"pilots"`
}

func (w *Workforce) pool(wt models.WorkerType) *Pool {
	switch wt {
	case models.Engineers:
		return &w.Engineers
	case models.Scientists:
		return &w.Scientists
	}
	return nil
}

// Available returns how many workers of a type are free
func (w *Workforce) Available(wt models.WorkerType) int {
	if wt == models.Pilots {
		return w.Pilots
	}
	if p := w.pool(wt); p != nil {
		return p.Available
	}
	return 0
}

// Total returns how many workers of a type the colony has
func (w *Workforce) Total(wt models.WorkerType) int {
	if wt == models.Pilots {
		return w.Pilots
	}
	if p := w.pool(wt); p != nil {
		return p.Total
	}
	return 0
}

// Take marks n free workers as busy. Nothing changes unless n are available.
func (w *Workforce) Take(wt models.WorkerType, n int) bool {
	p := w.pool(wt)
	if p == nil || n < 0 || p.Available < n {
		return false
	}
	p.Available -= n
	return true
}

// Return marks n busy workers as free. Nothing changes if that would exceed the total.
func (w *Workforce) Return(wt models.WorkerType, n int) bool {
	p := w.pool(wt)
	if p == nil || n < 0 || p.Available+n > p.Total {
		return false
	}
	p.Available += n
	return true
}

// Train adds one newly trained worker to both available and total
func (w *Workforce) Train(wt models.WorkerType) {
	w.Hire(wt, 1)
}

// Hire adds n workers to both available and total
func (w *Workforce) Hire(wt models.WorkerType, n int) {
	if n <= 0 {
		return
	}
	if wt == models.Pilots {
		w.Pilots += n
		return
	}
	if p := w.pool(wt); p != nil {
		p.Available += n
		p.Total += n
	}
}
