package domain

// Значения по умолчанию для офиса, который создаётся при первом старте
const (
	DefaultOfficeID       = "default-office"
	DefaultOfficeName     = "Main Office"
	DefaultOfficeLocation = "Chennai"
	DefaultCarCapacity    = 50
	DefaultBikeCapacity   = 100
)

// Business validation constants
const (
	MaxDescriptionLength     = 500
	MaxRejectionReasonLength = 500
	MaxPoolCapacity          = 10000
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// PromotionActor значение decided_by у заявок, одобренных автоматически из листа ожидания
const PromotionActor = "waitlist-promotion"

// AutoApproveActor значение decided_by у заявок, одобренных сразу при подаче
const AutoApproveActor = "auto-approve"
