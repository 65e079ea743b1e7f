// Package notifier dispatches complaint notification emails to the municipal
// inbox. Dispatch is at-most-once and fully decoupled from complaint
// submission: jobs go through a bounded queue, a full queue drops the job,
// and send failures are logged and swallowed.
package notifier

import (
	"context"
	"fmt"
	"time"

	"backend/internal/model"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// UserDetails is the submitter snapshot included in the notification.
type UserDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ComplaintNotification is one dispatch job.
type ComplaintNotification struct {
	Complaint   model.Complaint `json:"complaint"`
	UserDetails UserDetails     `json:"userDetails"`
}

// Dispatcher accepts notification jobs without blocking the caller.
type Dispatcher interface {
	Enqueue(n ComplaintNotification) bool
}

// EmailDispatcher sends complaint notifications through Resend from a single
// background worker.
type EmailDispatcher struct {
	client      *resend.Client
	from        string
	adminEmail  string
	sendTimeout time.Duration
	queue       chan ComplaintNotification
	done        chan struct{}
	logger      *zap.Logger
}

// NewEmailDispatcher builds a dispatcher with a bounded queue. An empty API
// key or admin address yields a dispatcher that logs and drops every job,
// which keeps complaint submission working in environments without email.
func NewEmailDispatcher(apiKey, from, adminEmail string, queueSize int, sendTimeout time.Duration, logger *zap.Logger) *EmailDispatcher {
	var client *resend.Client
	if apiKey != "" && adminEmail != "" {
		client = resend.NewClient(apiKey)
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &EmailDispatcher{
		client:      client,
		from:        from,
		adminEmail:  adminEmail,
		sendTimeout: sendTimeout,
		queue:       make(chan ComplaintNotification, queueSize),
		done:        make(chan struct{}),
		logger:      logger,
	}
}

// Enqueue hands off a notification without blocking. Returns false when the
// job was dropped because the queue is full.
func (d *EmailDispatcher) Enqueue(n ComplaintNotification) bool {
	select {
	case d.queue <- n:
		return true
	default:
		d.logger.Warn("notification queue full, dropping job",
			zap.String("complaint_id", n.Complaint.ComplaintID))
		return false
	}
}

// Run drains the queue until Close is called. Intended to run in its own
// goroutine.
func (d *EmailDispatcher) Run() {
	for {
		select {
		case n := <-d.queue:
			d.send(n)
		case <-d.done:
			return
		}
	}
}

// Close stops the worker. Queued jobs are abandoned (at-most-once).
func (d *EmailDispatcher) Close() {
	close(d.done)
}

func (d *EmailDispatcher) send(n ComplaintNotification) {
	if d.client == nil {
		d.logger.Debug("email dispatch disabled, skipping notification",
			zap.String("complaint_id", n.Complaint.ComplaintID))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
	defer cancel()

	location := "Not specified"
	if n.Complaint.Location != nil && *n.Complaint.Location != "" {
		location = *n.Complaint.Location
	}

	params := &resend.SendEmailRequest{
		From:    d.from,
		To:      []string{d.adminEmail},
		Subject: fmt.Sprintf("New Complaint Submitted - %s", n.Complaint.ComplaintID),
		Html: fmt.Sprintf(`<h2>New Complaint Received</h2>
<p><strong>Tracking ID:</strong> %s</p>
<p><strong>Type:</strong> %s</p>
<p><strong>Location:</strong> %s</p>
<p><strong>Status:</strong> %s</p>
<p><strong>Submitted on:</strong> %s</p>
<h4>Description:</h4>
<p>%s</p>
<h3>User Information</h3>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Phone:</strong> %s</p>`,
			n.Complaint.ComplaintID,
			n.Complaint.ComplaintType,
			location,
			n.Complaint.Status,
			n.Complaint.CreatedAt.Format(time.RFC1123),
			n.Complaint.Description,
			n.UserDetails.Name,
			n.UserDetails.Email,
			n.UserDetails.Phone,
		),
	}

	if _, err := d.client.Emails.SendWithContext(ctx, params); err != nil {
		d.logger.Warn("complaint notification failed",
			zap.String("complaint_id", n.Complaint.ComplaintID),
			zap.Error(err))
		return
	}

	d.logger.Info("complaint notification sent",
		zap.String("complaint_id", n.Complaint.ComplaintID))
}
