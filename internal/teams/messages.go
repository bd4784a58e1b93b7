package teams

import (
	"fmt"

	"github.com/hugh/planit/internal/database/models"
)

func invitationTitle(meetingTitle string) string {
	return "Meeting Invitation: " + meetingTitle
}

func invitationMessage(m *models.Meeting, teamName string) string {
	when := " on " + m.Date.String()
	if m.StartTime != nil && m.EndTime != nil {
		when += fmt.Sprintf(" from %s to %s", m.StartTime, m.EndTime)
	}

	msg := fmt.Sprintf("You have been invited to join the meeting \"%s\"%s in team \"%s\"", m.Title, when, teamName)
	if m.Description != "" {
		msg += ". Description: " + m.Description
	}
	return msg
}

func addedTitle(meetingTitle string) string {
	return "New Meeting Invitation: " + meetingTitle
}

func addedMessage(m *models.Meeting, teamName string) string {
	if m.Mode == models.InvitationModeMandatory {
		return fmt.Sprintf("You have been invited to join the mandatory meeting \"%s\" in team \"%s\".", m.Title, teamName)
	}
	return fmt.Sprintf("You have been invited to join the meeting \"%s\" in team \"%s\". Please respond.", m.Title, teamName)
}

func removedTitle(meetingTitle string) string {
	return "Removed from Meeting: " + meetingTitle
}

func removedMessage(m *models.Meeting, teamName string) string {
	return fmt.Sprintf("You have been removed from the meeting \"%s\" in team \"%s\".", m.Title, teamName)
}

func canceledTitle(meetingTitle string) string {
	return "Meeting Canceled: " + meetingTitle
}

func canceledMessage(m *models.Meeting, teamName string) string {
	return fmt.Sprintf("The meeting \"%s\" in team \"%s\" has been canceled.", m.Title, teamName)
}

func teamDeletedTitle(teamName string) string {
	return "Team Deleted: " + teamName
}

func teamDeletedMessage(teamName string) string {
	return fmt.Sprintf("The team \"%s\" has been deleted by the creator.", teamName)
}
