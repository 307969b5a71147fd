package middleware

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Field length limits. Generous: channel names and video URLs are
// free-form, the caps only stop abuse.
const (
	MaxChannelNameLen = 200
	MaxVideoInputLen  = 500
)

// ErrorResponse returns the flat API error body: {"error": "<message>"}.
func ErrorResponse(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// ValidateChannelName checks that a channel name is present and within
// limits. Names are passed through unmodified; trimming would change
// the cache key the analysis is stored under.
func ValidateChannelName(name string) (string, string) {
	if name == "" {
		return "", "Channel name is required"
	}
	if len(name) > MaxChannelNameLen {
		return "", "Channel name must be at most 200 characters"
	}
	return name, ""
}

// ValidateChannels normalizes the battle request's channels array. Each
// entry is either a plain string or an object with a channelName field.
// Size bounds are the battle service's concern, not checked here.
func ValidateChannels(raw []json.RawMessage) ([]string, string) {
	if raw == nil {
		return nil, "Channels array is required"
	}

	names := make([]string, 0, len(raw))
	for _, entry := range raw {
		var name string
		if err := json.Unmarshal(entry, &name); err == nil {
			names = append(names, name)
			continue
		}

		var obj struct {
			ChannelName string `json:"channelName"`
		}
		if err := json.Unmarshal(entry, &obj); err != nil || obj.ChannelName == "" {
			return nil, "Each channel must be a name or an object with a channelName field"
		}
		names = append(names, obj.ChannelName)
	}

	for _, name := range names {
		if _, errMsg := ValidateChannelName(name); errMsg != "" {
			return nil, errMsg
		}
	}
	return names, ""
}

// ValidateVideoInput checks the truth-analysis input. Only presence and
// length here; URL-shape validation lives in the truth service.
func ValidateVideoInput(input string) (string, string) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", "Video URL is required"
	}
	if len(input) > MaxVideoInputLen {
		return "", "Video URL must be at most 500 characters"
	}
	return input, ""
}
