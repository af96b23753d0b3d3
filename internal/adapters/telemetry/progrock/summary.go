package progrock

import (
	"fmt"
	"sync"
	"time"

	"github.com/vito/progrock"
	"go.trai.ch/whl/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	statusRunning   = "running"
	statusCompleted = "completed"
	statusFailed    = "failed"
	statusCached    = "cached"
)

// VertexState is the last known state of a recorded vertex.
type VertexState struct {
	ID       string
	Name     string
	Status   string
	Duration time.Duration
}

// Summary is a progrock.Writer that tracks vertex state from the status
// stream and logs every vertex once it finishes.
type Summary struct {
	logger ports.Logger

	mu       sync.Mutex
	vertices []VertexState
}

var _ progrock.Writer = (*Summary)(nil)

// NewSummary creates a Summary logging to logger.
func NewSummary(logger ports.Logger) *Summary {
	return &Summary{logger: logger}
}

// WriteStatus processes one status update from the recorder.
func (s *Summary) WriteStatus(update *progrock.StatusUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range update.Vertexes {
		s.updateOrAddVertex(v)
	}
	return nil
}

// Close does nothing; every vertex is logged as it completes.
func (s *Summary) Close() error {
	return nil
}

// Vertices returns a snapshot of the tracked vertices in recording order.
func (s *Summary) Vertices() []VertexState {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]VertexState, len(s.vertices))
	copy(out, s.vertices)
	return out
}

func (s *Summary) updateOrAddVertex(v *progrock.Vertex) {
	for i := range s.vertices {
		if s.vertices[i].ID == v.Id {
			s.updateVertexStatus(i, v)
			return
		}
	}
	s.vertices = append(s.vertices, VertexState{
		ID:     v.Id,
		Name:   v.Name,
		Status: statusRunning,
	})
	s.updateVertexStatus(len(s.vertices)-1, v)
}

func (s *Summary) updateVertexStatus(index int, v *progrock.Vertex) {
	state := &s.vertices[index]
	if state.Status != statusRunning || v.Completed == nil {
		return
	}

	if v.Started != nil {
		state.Duration = v.Completed.AsTime().Sub(v.Started.AsTime())
	}

	switch {
	case v.Error != nil:
		state.Status = statusFailed
		s.logger.Error(zerr.With(zerr.New(state.Name+" failed"), "error", *v.Error))
	case v.Cached:
		state.Status = statusCached
		s.logger.Info(state.Name + " cached")
	default:
		state.Status = statusCompleted
		s.logger.Info(fmt.Sprintf("%s completed in %s", state.Name, state.Duration.Round(time.Millisecond)))
	}
}
