package config

import (
	"flag"
	"os"
	"strconv"
)

var (
	RunAddress          string
	GatewayAddress      string
	BotToken            string
	GuildID             string
	LogChannelID        string
	RulesPath           string
	LogLevel            string
	AdminLogin          string
	AdminPassword       string
	JWTSecret           string
	RetentionDays       int
	ArchiveDelaySeconds int
)

func ParseFlags() {

	flag.StringVar(&RunAddress, "a", ":8080", "address to run server")
	flag.StringVar(&GatewayAddress, "g", "", "chat gateway api base url")
	flag.StringVar(&BotToken, "t", "", "bot token")
	flag.StringVar(&GuildID, "i", "", "guild id")
	flag.StringVar(&LogChannelID, "o", "", "order log channel id")
	flag.StringVar(&RulesPath, "c", "", "rules content yaml path")
	flag.StringVar(&LogLevel, "l", "info", "log level")
	flag.StringVar(&AdminLogin, "u", "admin", "admin api login")
	flag.StringVar(&AdminPassword, "p", "", "admin api password")
	flag.StringVar(&JWTSecret, "s", "", "jwt signing secret")
	flag.IntVar(&RetentionDays, "r", 30, "history retention in days")
	flag.IntVar(&ArchiveDelaySeconds, "d", 30, "completed order archive delay in seconds")
	flag.Parse()

	if envRunAddr := os.Getenv("RUN_ADDRESS"); envRunAddr != "" {
		RunAddress = envRunAddr
	}
	if gatewayAddress := os.Getenv("GATEWAY_ADDRESS"); gatewayAddress != "" {
		GatewayAddress = gatewayAddress
	}
	if botToken := os.Getenv("BOT_TOKEN"); botToken != "" {
		BotToken = botToken
	}
	if guildID := os.Getenv("GUILD_ID"); guildID != "" {
		GuildID = guildID
	}
	if logChannelID := os.Getenv("LOG_CHANNEL_ID"); logChannelID != "" {
		LogChannelID = logChannelID
	}
	if rulesPath := os.Getenv("RULES_PATH"); rulesPath != "" {
		RulesPath = rulesPath
	}
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		LogLevel = logLevel
	}
	if adminLogin := os.Getenv("ADMIN_LOGIN"); adminLogin != "" {
		AdminLogin = adminLogin
	}
	if adminPassword := os.Getenv("ADMIN_PASSWORD"); adminPassword != "" {
		AdminPassword = adminPassword
	}
	if jwtSecret := os.Getenv("JWT_SECRET"); jwtSecret != "" {
		JWTSecret = jwtSecret
	}
	if retentionDays := os.Getenv("RETENTION_DAYS"); retentionDays != "" {
		if parsed, err := strconv.Atoi(retentionDays); err == nil {
			RetentionDays = parsed
		}
	}
	if archiveDelay := os.Getenv("ARCHIVE_DELAY_SECONDS"); archiveDelay != "" {
		if parsed, err := strconv.Atoi(archiveDelay); err == nil {
			ArchiveDelaySeconds = parsed
		}
	}
}
