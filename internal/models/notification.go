package models

import (
	"strings"
	"time"
)

type NotificationType string

const (
	NotifyCustomersPersonal NotificationType = "FOR_CUSTOMERS_PERSONAL"
	NotifyStaffsPersonal    NotificationType = "FOR_STAFFS_PERSONAL"
	NotifyAdminsPersonal    NotificationType = "FOR_ADMINS_PERSONAL"
	NotifyCustomers         NotificationType = "FOR_CUSTOMERS"
	NotifyStaffs            NotificationType = "FOR_STAFFS"
	NotifyAdmins            NotificationType = "FOR_ADMINS"
)

func (t NotificationType) Personal() bool {
	return strings.HasSuffix(string(t), "_PERSONAL")
}

func (t NotificationType) Valid() bool {
	switch t {
	case NotifyCustomersPersonal, NotifyStaffsPersonal, NotifyAdminsPersonal,
		NotifyCustomers, NotifyStaffs, NotifyAdmins:
		return true
	}
	return false
}

type Notification struct {
	ID        int64            `json:"id"`
	UserID    string           `json:"userId,omitempty"`
	Content   string           `json:"content"`
	Type      NotificationType `json:"type"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
}

type NotificationRequest struct {
	Content      string           `json:"content"`
	Type         NotificationType `json:"type"`
	TargetUserID string           `json:"targetUserId,omitempty"`
}
