package usecase

import (
	"context"
	"fmt"
	"strings"

	"sos-srv/internal/dispatch"
	"sos-srv/internal/model"
	"sos-srv/pkg/discord"
)

func (uc *implUseCase) DispatchNewAlert(ctx context.Context, input dispatch.NewAlertInput) error {
	if input.AlertID == "" {
		return dispatch.ErrInvalidInput
	}

	requester := input.RequesterID
	if input.RequesterName != "" {
		requester = fmt.Sprintf("%s (%s)", input.RequesterName, input.RequesterID)
	}

	opts := discord.MessageOptions{
		Type:        discord.MessageTypeUrgent,
		Title:       "🆘 New SOS alert",
		Description: fmt.Sprintf("A civilian requested help. Alert **%s** is waiting for a responder.", input.AlertID),
		URL:         mapURL(input.Location),
		Fields: []discord.EmbedField{
			buildField("Alert ID", input.AlertID, false),
			buildField("Requester", requester, true),
			buildField("Location", formatLocation(input.Location), true),
			buildField("Raised At", input.CreatedAt.UTC().Format("2006-01-02 15:04:05 MST"), true),
		},
		Timestamp: input.CreatedAt,
		Footer: &discord.EmbedFooter{
			Text: "SOS Service • Dispatch",
		},
	}

	return uc.discord.SendEmbed(ctx, opts)
}

func (uc *implUseCase) DispatchStatusChange(ctx context.Context, input dispatch.StatusChangeInput) error {
	if input.AlertID == "" || !input.Status.IsValid() {
		return dispatch.ErrInvalidInput
	}

	opts := discord.MessageOptions{
		Type:        mapStatusToType(input.Status),
		Title:       fmt.Sprintf("SOS %s", strings.ToLower(string(input.Status))),
		Description: fmt.Sprintf("Alert **%s** is now %s.", input.AlertID, input.Status),
		Fields: []discord.EmbedField{
			buildField("Alert ID", input.AlertID, false),
			buildField("By", input.ActorID, true),
			buildField("At", input.At.UTC().Format("2006-01-02 15:04:05 MST"), true),
		},
		Timestamp: input.At,
		Footer: &discord.EmbedFooter{
			Text: "SOS Service • Dispatch",
		},
	}

	return uc.discord.SendEmbed(ctx, opts)
}

func mapStatusToType(status model.AlertStatus) discord.MessageType {
	switch status {
	case model.AlertStatusAccepted:
		return discord.MessageTypeInfo
	case model.AlertStatusCompleted:
		return discord.MessageTypeSuccess
	case model.AlertStatusCancelled:
		return discord.MessageTypeWarning
	default:
		return discord.MessageTypeUrgent
	}
}
