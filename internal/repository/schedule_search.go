package repository

import (
	"context"
	"strings"
)

// TimetableQuery defines filters and pagination for the public timetable
// search endpoint.
type TimetableQuery struct {
	Subject  string // substring match on subject name
	Group    string // substring match on group name
	Room     string // substring match on room name
	Day      string // exact day label, e.g. "Lunes"
	Page     int
	PageSize int
}

// TimetableRow is the denormalized search result shown to guests.  Internal
// fields such as status or headcount are not exposed here.
type TimetableRow struct {
	ID          uint64  `json:"id"`
	GroupID     uint64  `json:"group_id"`
	GroupName   string  `json:"group"`
	SubjectID   uint64  `json:"subject_id"`
	SubjectName string  `json:"subject"`
	Teacher     *string `json:"teacher"`
	RoomID      uint64  `json:"room_id"`
	RoomName    string  `json:"room"`
	Day         string  `json:"day"`
	StartsAt    string  `json:"starts_at"`
	EndsAt      string  `json:"ends_at"`
}

// SearchTimetable returns approved schedule entries matching the filters,
// plus the total count for pagination.
func (r *ScheduleRepo) SearchTimetable(ctx context.Context, q TimetableQuery) ([]TimetableRow, int64, error) {
	where := []string{"s.status = 'APPROVED'"}
	args := []any{}

	if q.Subject != "" {
		where = append(where, "LOWER(sub.name) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Subject)+"%")
	}
	if q.Group != "" {
		where = append(where, "LOWER(g.name) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Group)+"%")
	}
	if q.Room != "" {
		where = append(where, "LOWER(rm.name) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Room)+"%")
	}
	if q.Day != "" {
		where = append(where, "s.day = ?")
		args = append(args, q.Day)
	}
	cond := strings.Join(where, " AND ")

	const from = ` FROM schedules s
		JOIN student_groups g ON g.id = s.group_id
		JOIN subjects sub     ON sub.id = s.subject_id
		JOIN rooms rm         ON rm.id = s.room_id
		LEFT JOIN users t     ON t.id = s.teacher_id`

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+from+` WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if q.PageSize <= 0 {
		q.PageSize = 50
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	dataSQL := `SELECT s.id, g.id, g.name, sub.id, sub.name, t.full_name,
			rm.id, rm.name, s.day, s.starts_at, s.ends_at` + from + `
		WHERE ` + cond + `
		ORDER BY s.day ASC, s.starts_at ASC
		LIMIT ? OFFSET ?`
	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]TimetableRow, 0, limit)
	for rows.Next() {
		var d TimetableRow
		if err := rows.Scan(&d.ID, &d.GroupID, &d.GroupName, &d.SubjectID, &d.SubjectName,
			&d.Teacher, &d.RoomID, &d.RoomName, &d.Day, &d.StartsAt, &d.EndsAt); err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
