package booking_types

import "github.com/m04kA/SMC-AppointmentService/internal/service/bookingtypes/models"

// LinkFormRequest тело запроса привязки формы
type LinkFormRequest struct {
	FormID int64 `json:"formId"`
}

// RuleListResponse правила доступности типа
type RuleListResponse struct {
	Rules []models.RuleResponse `json:"rules"`
}
