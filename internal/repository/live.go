package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/shenikar/dispatch_alerts/internal/models"
	"github.com/shenikar/dispatch_alerts/internal/service"
)

// LiveStateRepository хранит состояние живой таблицы в JSON-файле
type LiveStateRepository struct {
	path       string
	known      map[string]struct{}
	logChannel string
}

// NewLiveStateRepository создает хранилище. known - допустимые каналы.
func NewLiveStateRepository(path string, known []string, logChannel string) service.LiveStateRepository {
	set := make(map[string]struct{}, len(known))
	for _, k := range known {
		set[k] = struct{}{}
	}
	return &LiveStateRepository{path: path, known: set, logChannel: logChannel}
}

// Load читает состояние поверх значений по умолчанию и отбрасывает неизвестные каналы.
// При отсутствии или повреждении файла возвращает состояние по умолчанию.
func (r *LiveStateRepository) Load() (models.LiveState, error) {
	state := models.DefaultLiveState(r.logChannel)

	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return state, nil
	}
	if err != nil {
		return state, fmt.Errorf("failed to read live state %s: %w", r.path, err)
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return models.DefaultLiveState(r.logChannel), fmt.Errorf("corrupt live state %s: %w", r.path, err)
	}

	threads := make([]string, 0, len(state.Threads))
	for _, t := range state.Threads {
		if _, ok := r.known[t]; ok {
			threads = append(threads, t)
		}
	}
	state.Threads = threads
	if _, ok := models.ParseWindow(string(state.Period)); !ok {
		state.Period = models.WindowDay
	}
	if state.NextUpdateSec <= 0 {
		state.NextUpdateSec = models.DefaultLiveRefreshSec
	}
	if state.MsgIDs == nil {
		state.MsgIDs = make(map[string]int64)
	}
	return state, nil
}

// Save атомарно записывает состояние
func (r *LiveStateRepository) Save(state models.LiveState) error {
	return writeJSONAtomic(r.path, state)
}
