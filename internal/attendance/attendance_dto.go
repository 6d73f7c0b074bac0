package attendance

type CheckInRequest struct {
	Status string `json:"status" binding:"omitempty,oneof=PRESENT LATE HALF_DAY REMOTE"`
	Notes  string `json:"notes"`
}

type CheckOutRequest struct {
	Notes string `json:"notes"`
}

type CreateAttendanceRequest struct {
	UserID       string `json:"user_id" binding:"required,uuid"`
	Date         string `json:"date" binding:"required"`
	Status       string `json:"status" binding:"required,oneof=PRESENT ABSENT LATE HALF_DAY REMOTE"`
	CheckInTime  string `json:"check_in_time"`
	CheckOutTime string `json:"check_out_time"`
	Notes        string `json:"notes"`
}

type UpdateAttendanceRequest struct {
	Status       *string `json:"status" binding:"omitempty,oneof=PRESENT ABSENT LATE HALF_DAY REMOTE"`
	CheckInTime  *string `json:"check_in_time"`
	CheckOutTime *string `json:"check_out_time"`
	Notes        *string `json:"notes"`
}

type AttendanceResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	Date         string  `json:"date"`
	CheckInTime  *string `json:"check_in_time,omitempty"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
	Status       string  `json:"status"`
	Notes        string  `json:"notes,omitempty"`
}
