package holiday

type HolidayRequest struct {
	HolidayDate string `json:"holiday_date" binding:"required"`
	Description string `json:"description"`
	WeeklyOff   bool   `json:"weekly_off"`
}

type UpsertHolidayListRequest struct {
	Name     string           `json:"name" binding:"required"`
	FromDate string           `json:"from_date" binding:"required"`
	ToDate   string           `json:"to_date" binding:"required"`
	Holidays []HolidayRequest `json:"holidays" binding:"dive"`
}

type HolidayResponse struct {
	HolidayDate string `json:"holiday_date"`
	Description string `json:"description"`
	WeeklyOff   bool   `json:"weekly_off"`
}

type HolidayListResponse struct {
	ID        string            `json:"id"`
	CompanyID string            `json:"company_id"`
	Name      string            `json:"name"`
	FromDate  string            `json:"from_date"`
	ToDate    string            `json:"to_date"`
	Holidays  []HolidayResponse `json:"holidays"`
}

// HolidaysBetweenArgs adalah argumen method holiday.get_holidays_between_dates.
type HolidaysBetweenArgs struct {
	Company   string `json:"company"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}
