package store

// Schedule is a recurring instruction registered from a chat gateway.
type Schedule struct {
	ID              int
	ChatID          string
	Instruction     string
	Persona         string
	IntervalSeconds int
}

func (s *Store) AddSchedule(chatID, instruction, persona string, intervalSeconds int) error {
	query := `INSERT INTO schedules (chat_id, instruction, persona, interval_seconds, last_run)
	          VALUES (?, ?, ?, ?, datetime('now', '-365 days'))`
	_, err := s.DB.Exec(query, chatID, instruction, persona, intervalSeconds)
	return err
}

// DueSchedules returns active schedules whose interval has elapsed since
// their last run.
func (s *Store) DueSchedules() ([]Schedule, error) {
	query := `
		SELECT id, chat_id, instruction, persona, interval_seconds
		FROM schedules
		WHERE status = 'active'
		AND (last_run IS NULL OR (julianday('now') - julianday(last_run)) * 86400 >= interval_seconds)`
	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []Schedule
	for rows.Next() {
		var sc Schedule
		if err := rows.Scan(&sc.ID, &sc.ChatID, &sc.Instruction, &sc.Persona, &sc.IntervalSeconds); err != nil {
			return nil, err
		}
		schedules = append(schedules, sc)
	}
	return schedules, rows.Err()
}

// ChatSchedules lists the active schedules registered by one chat.
func (s *Store) ChatSchedules(chatID string) ([]Schedule, error) {
	query := `
		SELECT id, chat_id, instruction, persona, interval_seconds
		FROM schedules
		WHERE chat_id = ? AND status = 'active'
		ORDER BY id`
	rows, err := s.DB.Query(query, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []Schedule
	for rows.Next() {
		var sc Schedule
		if err := rows.Scan(&sc.ID, &sc.ChatID, &sc.Instruction, &sc.Persona, &sc.IntervalSeconds); err != nil {
			return nil, err
		}
		schedules = append(schedules, sc)
	}
	return schedules, rows.Err()
}

func (s *Store) UpdateScheduleLastRun(id int) error {
	query := `UPDATE schedules SET last_run = datetime('now') WHERE id = ?`
	_, err := s.DB.Exec(query, id)
	return err
}

func (s *Store) DeleteSchedule(chatID string, id int) error {
	query := `DELETE FROM schedules WHERE chat_id = ? AND id = ?`
	_, err := s.DB.Exec(query, chatID, id)
	return err
}
