package domain

// Default business configuration values
const (
	// DefaultDepositDeadlineHours срок ожидания депозита с момента оформления заказа
	DefaultDepositDeadlineHours = 24

	// CancellationNoticeHours минимальный срок до начала бронирования,
	// при котором клиент может отменить заказ без штрафа
	CancellationNoticeHours = 24
)

// Business validation constants
const (
	MaxSpecialInstructionsLength = 500
	MaxCancellationReasonLength  = 500
	MaxConfirmationNoteLength    = 500
	MaxClaimDescriptionLength    = 1000

	MinItemQuantity = 1
	MaxItemQuantity = 50

	VerificationCodeLength = 6
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
