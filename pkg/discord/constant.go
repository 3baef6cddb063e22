package discord

import "time"

const webhookPrefix = "https://discord.com/api/webhooks/"

const (
	ColorBlue   = 3447003
	ColorGreen  = 3066993
	ColorYellow = 16776960
	ColorRed    = 15158332
	ColorOrange = 15105570
)

const (
	MaxMessageLength  = 2000
	MaxEmbedLength    = 6000
	MaxTitleLen       = 256
	MaxDescriptionLen = 4096
	MaxFieldValueLen  = 1024
)

const (
	DefaultTimeout    = 10 * time.Second
	DefaultRetryCount = 2
	DefaultRetryDelay = 500 * time.Millisecond
	DefaultUsername   = "SOS Dispatch"
	UserAgent         = "SOS-Dispatch/1.0"
	ReportBugTitle    = "SOS Service Error Report"
)
