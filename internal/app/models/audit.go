package models

import "time"

// AuditEntry is one row of the system_logs table
type AuditEntry struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Action    string    `json:"action" db:"action"`
	LogTime   time.Time `json:"logTime" db:"log_time"`
	IPAddress string    `json:"ipAddress" db:"ip_address"`
}
