package analytics

import (
	"time"

	"github.com/google/uuid"
)

// Window is a [start, end) aggregation range. Invariant: Start <= End.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration returns the window length.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Options carries the caller-supplied window bounds and optional rescue
// scope. Nil bounds fall back to the default 30-day window.
type Options struct {
	Start    *time.Time
	End      *time.Time
	RescueID *uuid.UUID
}

// TimeSeriesPoint is one day of a sparse daily series. Days with zero
// qualifying events are not emitted.
type TimeSeriesPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// ActivityCount is one entry of the top-activities ranking.
type ActivityCount struct {
	Activity   string  `json:"activity"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

// UserBehaviorMetrics aggregates user engagement for a window.
type UserBehaviorMetrics struct {
	TotalUsers         int64           `json:"totalUsers"`
	ActiveUsers        int64           `json:"activeUsers"`
	NewUsers           int64           `json:"newUsers"`
	UserGrowthRate     float64         `json:"userGrowthRate"`
	AvgSessionDuration float64         `json:"avgSessionDuration"`
	RetentionRate      float64         `json:"retentionRate"`
	TopUserActivities  []ActivityCount `json:"topUserActivities"`
}

// PetTypeMetric is one entry of the popular-pet-types ranking.
type PetTypeMetric struct {
	Type         string  `json:"type"`
	Count        int64   `json:"count"`
	AdoptionRate float64 `json:"adoptionRate"`
}

// RescuePerformance summarizes one rescue's adoption throughput.
type RescuePerformance struct {
	RescueID          uuid.UUID `json:"rescueId"`
	RescueName        string    `json:"rescueName"`
	Adoptions         int64     `json:"adoptions"`
	AvgTimeToAdoption float64   `json:"averageTimeToAdoption"`
	AdoptionRate      float64   `json:"adoptionRate"`
}

// AdoptionMetrics aggregates adoption outcomes for a window.
type AdoptionMetrics struct {
	TotalAdoptions    int64               `json:"totalAdoptions"`
	TotalApplications int64               `json:"totalApplications"`
	AdoptionRate      float64             `json:"adoptionRate"`
	AvgTimeToAdoption float64             `json:"avgTimeToAdoption"`
	PopularPetTypes   []PetTypeMetric     `json:"popularPetTypes"`
	AdoptionTrends    []TimeSeriesPoint   `json:"adoptionTrends"`
	RescuePerformance []RescuePerformance `json:"rescuePerformance"`
}

// DatabasePerformance holds best-effort connection-pool proxies, not
// instrumented database telemetry.
type DatabasePerformance struct {
	AvgQueryTime      float64 `json:"avgQueryTime"`
	SlowQueries       int     `json:"slowQueries"`
	ConnectionCount   int     `json:"connectionCount"`
	ActiveConnections int     `json:"activeConnections"`
	MaxConnections    int     `json:"maxConnections"`
}

// StorageUsage holds synthetic storage estimates derived from
// attachment counts.
type StorageUsage struct {
	TotalImages       int64            `json:"totalImages"`
	TotalStorageUsed  string           `json:"totalStorageUsed"`
	StorageGrowthRate float64          `json:"storageGrowthRate"`
	ImagesByType      map[string]int64 `json:"imagesByType"`
	AverageImageSize  float64          `json:"averageImageSize"`
}

// PlatformMetrics aggregates platform health estimates for a window.
// Uptime, database and storage figures are derived proxies rather than
// measured SLOs.
type PlatformMetrics struct {
	APIRequestCount     int64               `json:"apiRequestCount"`
	AvgResponseTime     float64             `json:"avgResponseTime"`
	ErrorRate           float64             `json:"errorRate"`
	SystemUptime        float64             `json:"systemUptime"`
	DatabasePerformance DatabasePerformance `json:"databasePerformance"`
	StorageUsage        StorageUsage        `json:"storageUsage"`
}

// ApplicationMetrics aggregates application processing for a window.
type ApplicationMetrics struct {
	StatusMetrics     map[string]int64  `json:"statusMetrics"`
	Trends            []TimeSeriesPoint `json:"trends"`
	AvgProcessingTime float64           `json:"avgProcessingTime"`
	TotalApplications int64             `json:"totalApplications"`
	ApprovalRate      float64           `json:"approvalRate"`
}

// CommunicationMetrics aggregates chat and message activity for a window.
type CommunicationMetrics struct {
	TotalChats         int64             `json:"totalChats"`
	ActiveChats        int64             `json:"activeChats"`
	TotalMessages      int64             `json:"totalMessages"`
	AvgMessagesPerChat float64           `json:"avgMessagesPerChat"`
	ChatEngagementRate float64           `json:"chatEngagementRate"`
	AvgResponseTime    float64           `json:"avgResponseTime"`
	MessageTrends      []TimeSeriesPoint `json:"messageTrends"`
}

// DashboardSnapshot is the merged, all-or-nothing result of running
// every collector once against the same window and scope.
type DashboardSnapshot struct {
	Users         UserBehaviorMetrics  `json:"users"`
	Adoptions     AdoptionMetrics      `json:"adoptions"`
	Platform      PlatformMetrics      `json:"platform"`
	Applications  ApplicationMetrics   `json:"applications"`
	Communication CommunicationMetrics `json:"communication"`
	GeneratedAt   time.Time            `json:"generatedAt"`
}

// RealTimeSnapshot is a cheap, short-fixed-window subset of metrics for
// frequent polling. ActiveChats and PendingApplications are live
// gauges, not window aggregates.
type RealTimeSnapshot struct {
	ActiveUsers          int64     `json:"activeUsers"`
	NewApplicationsToday int64     `json:"newApplicationsToday"`
	MessagesLastHour     int64     `json:"messagesLastHour"`
	NewPetsToday         int64     `json:"newPetsToday"`
	ActiveChats          int64     `json:"activeChats"`
	PendingApplications  int64     `json:"pendingApplications"`
	Timestamp            time.Time `json:"timestamp"`
}

// PetTypeCount is one entry of the adoptions-by-type breakdown.
type PetTypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

// RescueAdoptionCount is one entry of the rescue adoption leaderboard.
type RescueAdoptionCount struct {
	RescueID   uuid.UUID `json:"rescueId"`
	RescueName string    `json:"rescueName"`
	Adoptions  int64     `json:"adoptions"`
}

// PetSummary aggregates adopted-pet figures for a window.
type PetSummary struct {
	TotalAdoptions    int64                 `json:"totalAdoptions"`
	AdoptionRate      float64               `json:"adoptionRate"`
	AdoptionsByType   []PetTypeCount        `json:"adoptionsByType"`
	AdoptionTrends    []TimeSeriesPoint     `json:"adoptionTrends"`
	RescuePerformance []RescueAdoptionCount `json:"rescuePerformance"`
}

// UserSummary aggregates registration figures for a window.
type UserSummary struct {
	UserRegistrations []TimeSeriesPoint `json:"userRegistrations"`
	TotalUsers        int64             `json:"totalUsers"`
	ActiveUsers       int64             `json:"activeUsers"`
	ActivityRate      float64           `json:"activityRate"`
}
