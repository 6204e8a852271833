package handler

import (
	"time"
)

func todayISO() string {
	return time.Now().Format("2006-01-02")
}
