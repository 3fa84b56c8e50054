package models

// DefaultLiveRefreshSec - минимальный интервал обновления живой таблицы по умолчанию
const DefaultLiveRefreshSec = 30

// LiveState - сохраняемое состояние живой таблицы лидеров
type LiveState struct {
	Active        bool             `json:"active"`
	Period        Window           `json:"period"`
	Threads       []string         `json:"threads"`
	MsgIDs        map[string]int64 `json:"msg_ids"`
	NextUpdateSec int              `json:"next_update_sec"`
}

// DefaultLiveState - инертное состояние для первого запуска
func DefaultLiveState(logChannel string) LiveState {
	return LiveState{
		Active:        false,
		Period:        WindowDay,
		Threads:       []string{logChannel},
		MsgIDs:        make(map[string]int64),
		NextUpdateSec: DefaultLiveRefreshSec,
	}
}

// Clone возвращает независимую копию
func (s LiveState) Clone() LiveState {
	c := s
	c.Threads = append([]string(nil), s.Threads...)
	c.MsgIDs = make(map[string]int64, len(s.MsgIDs))
	for k, v := range s.MsgIDs {
		c.MsgIDs[k] = v
	}
	return c
}
