package usecase

import (
	"fmt"

	"sos-srv/internal/model"
	"sos-srv/pkg/discord"
)

func buildField(name string, value string, inline bool) discord.EmbedField {
	if value == "" {
		value = "N/A"
	}
	if len(value) > discord.MaxFieldValueLen {
		value = truncateText(value, discord.MaxFieldValueLen)
	}
	return discord.EmbedField{
		Name:   name,
		Value:  value,
		Inline: inline,
	}
}

func formatLocation(loc model.Location) string {
	return fmt.Sprintf("%.5f, %.5f", loc.Lat, loc.Lng)
}

func mapURL(loc model.Location) string {
	return fmt.Sprintf("https://www.google.com/maps?q=%.6f,%.6f", loc.Lat, loc.Lng)
}

func truncateText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max < 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
