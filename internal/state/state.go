package state

import "sync"

// AppState holds the runtime storage configuration. The correction
// store itself is wired at startup; these settings back the config
// endpoints and the training-example directory.
type AppState struct {
	mu sync.RWMutex

	// Where training examples and other data files live
	DataDir string

	// Which correction-store backend is active: "postgres", "redis" or ""
	CorrectionStore string
}

// Global state instance
var State = &AppState{
	DataDir: "./data",
}

// SetDataDir updates the data directory.
func (s *AppState) SetDataDir(dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DataDir = dir
}

// GetDataDir returns the data directory.
func (s *AppState) GetDataDir() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.DataDir
}

// SetCorrectionStore records which store backend is active.
func (s *AppState) SetCorrectionStore(kind string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CorrectionStore = kind
}

// GetCorrectionStore returns the active store backend.
func (s *AppState) GetCorrectionStore() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.CorrectionStore
}
