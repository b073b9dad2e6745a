// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"workspan-server/commons"
	"workspan-server/models"
	"workspan-server/rabbitmq"
)

// PublishActivityEvent sends one activity event to the activity exchange.
// Best-effort: publishing happens after the owning transaction has
// committed, and a broker failure never fails the request that produced
// the event.
func PublishActivityEvent(event *models.ActivityEvent) {
	rmqClient, err := rabbitmq.NewClient(rabbitmq.RabbitMQConfig{})
	if err != nil {
		commons.Logger.Error("Activity event dropped, broker unavailable:", err)
		return
	}
	defer rmqClient.Close()

	if err := rmqClient.PublishActivityEvent(event); err != nil {
		commons.Logger.Errorf("Activity event %s dropped: %v", event.EID, err)
	}
}

func logProjectActivity(action string, actor models.ActivityActor, project *models.Project, description string) {
	event := models.NewActivityEvent(models.ActivityProject, action, actor)
	event.ProjectID = &project.ProjectID
	event.UserID = &project.UserID
	if description != "" {
		event.Description = &description
	}
	go PublishActivityEvent(event)
}

func logMilestoneActivity(action string, actor models.ActivityActor, project *models.Project, milestone *models.Milestone, description string) {
	event := models.NewActivityEvent(models.ActivityMilestone, action, actor)
	event.ProjectID = &project.ProjectID
	event.MilestoneID = &milestone.MilestoneID
	event.UserID = &project.UserID
	if description != "" {
		event.Description = &description
	}
	go PublishActivityEvent(event)
}

func logReviewActivity(action string, project *models.Project, milestoneID *string, description string) {
	event := models.NewActivityEvent(models.ActivityReview, action, models.ActorClient)
	event.ProjectID = &project.ProjectID
	event.MilestoneID = milestoneID
	event.UserID = &project.UserID
	if description != "" {
		event.Description = &description
	}
	go PublishActivityEvent(event)
}
