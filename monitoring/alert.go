package monitoring

import (
	"fmt"
	"time"
)

// AlertThreshold defines thresholds for different metrics
type AlertThreshold struct {
	ErrorRate      float64
	ProcessingTime time.Duration
	MemoryUsage    float64
}

// NotificationType represents the type of notification channel
type NotificationType string

const (
	EmailNotification NotificationType = "email"
	SlackNotification NotificationType = "slack"
)

// NotificationChannel represents a channel for sending alerts
type NotificationChannel struct {
	Type   NotificationType
	Target string
}

// AlertConfig holds configuration for the alert manager
type AlertConfig struct {
	Threshold     AlertThreshold
	Notifications []NotificationChannel
}

// AlertManager handles monitoring and alerting
type AlertManager struct {
	config    AlertConfig
	metrics   *MetricsCollector
	lastAlert time.Time
}

// NewAlertManager creates a new alert manager backed by metrics. The same
// *MetricsCollector a job records into is passed here so CheckThresholds
// evaluates the job's real counters rather than a disconnected collector.
func NewAlertManager(config AlertConfig, metrics *MetricsCollector) *AlertManager {
	return &AlertManager{
		config:    config,
		metrics:   metrics,
		lastAlert: time.Now(),
	}
}

// CheckThresholds checks if any metrics have exceeded their thresholds
func (a *AlertManager) CheckThresholds() error {
	// Check error rate
	if a.metrics.ErrorRate() > a.config.Threshold.ErrorRate {
		if err := a.sendAlert("Error rate threshold exceeded", map[string]interface{}{
			"current_rate": a.metrics.ErrorRate(),
			"threshold":    a.config.Threshold.ErrorRate,
		}); err != nil {
			return fmt.Errorf("failed to send error rate alert: %v", err)
		}
	}

	// Check processing time
	if avgTime := a.metrics.AverageProcessingTime(); avgTime > a.config.Threshold.ProcessingTime {
		if err := a.sendAlert("Processing time threshold exceeded", map[string]interface{}{
			"current_time": avgTime,
			"threshold":    a.config.Threshold.ProcessingTime,
		}); err != nil {
			return fmt.Errorf("failed to send processing time alert: %v", err)
		}
	}

	// Check memory usage
	memUsage := float64(a.metrics.MemoryUsage()) / (1024 * 1024) // Convert to MB
	if memUsage > a.config.Threshold.MemoryUsage {
		if err := a.sendAlert("Memory usage threshold exceeded", map[string]interface{}{
			"current_usage": memUsage,
			"threshold":     a.config.Threshold.MemoryUsage,
		}); err != nil {
			return fmt.Errorf("failed to send memory usage alert: %v", err)
		}
	}

	return nil
}

// sendAlert sends an alert through configured notification channels
func (a *AlertManager) sendAlert(message string, data map[string]interface{}) error {
	// Implement rate limiting
	if time.Since(a.lastAlert) < time.Minute {
		return nil // Skip if last alert was less than a minute ago
	}
	a.lastAlert = time.Now()

	for _, channel := range a.config.Notifications {
		if err := a.sendNotification(channel, message, data); err != nil {
			return fmt.Errorf("failed to send notification via %s: %v", channel.Type, err)
		}
	}

	return nil
}

// sendNotification sends a notification through a specific channel
func (a *AlertManager) sendNotification(channel NotificationChannel, message string, data map[string]interface{}) error {
	switch channel.Type {
	case EmailNotification:
		return a.sendEmailNotification(channel.Target, message, data)
	case SlackNotification:
		return a.sendSlackNotification(channel.Target, message, data)
	default:
		return fmt.Errorf("unsupported notification type: %s", channel.Type)
	}
}

// sendEmailNotification sends an email notification
func (a *AlertManager) sendEmailNotification(target, message string, data map[string]interface{}) error {
	// TODO: Implement email sending logic
	return nil
}

// sendSlackNotification sends a Slack notification
func (a *AlertManager) sendSlackNotification(target, message string, data map[string]interface{}) error {
	// TODO: Implement Slack notification logic
	return nil
}

// GetMetrics returns the current metrics
func (a *AlertManager) GetMetrics() map[string]interface{} {
	return a.metrics.GetMetrics()
}

// RecordMetric records a new metric value
func (a *AlertManager) RecordMetric(name string, value interface{}) {
	// TODO: Implement metric recording logic
}
