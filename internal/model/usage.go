package model

import "time"

const UsageDateLayout = "2006-01-02"

type ApiUsage struct {
	ApiName      string
	UsageDate    time.Time
	RequestCount int64
}
