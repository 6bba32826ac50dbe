package internal

import "time"

// Config is the full environment surface of the relay. Every port has the
// historical default so a bare `server` binary comes up on the well-known
// LAN layout.
type Config struct {
	Host              string        `env:"HOST,default=0.0.0.0"`
	TCPPort           int           `env:"TCP_PORT,default=9000"`
	VideoPort         int           `env:"VIDEO_PORT,default=10000"`
	AudioPort         int           `env:"AUDIO_PORT,default=11000"`
	ScreenPort        int           `env:"SCREEN_PORT,default=12000"`
	UploadPort        int           `env:"UPLOAD_PORT,default=13000"`
	DownloadPort      int           `env:"DOWNLOAD_PORT,default=14000"`
	HeartbeatInterval time.Duration `env:"HEARTBEAT_INTERVAL,default=10s"`
	MaxFileSize       int64         `env:"MAX_FILE_SIZE,default=104857600"`
	MaxChatHistory    int           `env:"MAX_CHAT_HISTORY,default=500"`
	UploadDir         string        `env:"UPLOAD_DIR,default=uploads"`
	StatsInterval     time.Duration `env:"STATS_INTERVAL,default=0s"`
	LogLevel          string        `env:"LOG_LEVEL,default=INFO"`
}
