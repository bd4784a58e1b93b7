package notify

import (
	"github.com/google/uuid"
	"github.com/hugh/planit/internal/database/models"
	"gorm.io/gorm"
)

// Batch writes notifications inside the caller's transaction. Nothing is
// counted until Commit, so a rolled back transaction leaves no trace.
type Batch struct {
	counts map[models.NotificationType]int
}

func NewBatch() *Batch {
	return &Batch{counts: make(map[models.NotificationType]int)}
}

// Notify inserts one notification. There is no dedup.
func (b *Batch) Notify(tx *gorm.DB, userID uuid.UUID, typ models.NotificationType, title, message string, relatedID *uuid.UUID) error {
	n := models.Notification{
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Message:   message,
		RelatedID: relatedID,
	}
	if err := tx.Create(&n).Error; err != nil {
		return err
	}
	b.counts[typ]++
	return nil
}

// Len is the number of notifications written so far.
func (b *Batch) Len() int {
	total := 0
	for _, c := range b.counts {
		total += c
	}
	return total
}

// Count is the number of notifications of one type written so far.
func (b *Batch) Count(typ models.NotificationType) int {
	return b.counts[typ]
}

// Commit records the batch in metrics. Call it after the transaction commits.
func (b *Batch) Commit() {
	for typ, c := range b.counts {
		notificationsCreated.WithLabelValues(string(typ)).Add(float64(c))
	}
}

// DeleteInvitationNotices removes meeting_invitation notifications tied to the
// given meetings. When userID is non-nil only that recipient's are removed.
func DeleteInvitationNotices(tx *gorm.DB, meetingIDs []uuid.UUID, userID *uuid.UUID) error {
	if len(meetingIDs) == 0 {
		return nil
	}
	q := tx.Where("type = ? AND related_id IN ?", models.NotificationMeetingInvitation, meetingIDs)
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	return q.Delete(&models.Notification{}).Error
}

// MarkInvitationNoticeRead flags the invitation notice of one meeting as read
// for one recipient.
func MarkInvitationNoticeRead(tx *gorm.DB, meetingID, userID uuid.UUID) error {
	return tx.Model(&models.Notification{}).
		Where("type = ? AND related_id = ? AND user_id = ?", models.NotificationMeetingInvitation, meetingID, userID).
		Update("is_read", true).Error
}
