package dto

type SendGiftRequestDTO struct {
	RecipientID int `json:"recipient_id" example:"9"`
	GiftID      int `json:"gift_id" example:"1"`
	Quantity    int `json:"quantity" example:"3" minimum:"1" maximum:"1000"`
}

type SendGiftResponseDTO struct {
	EventID  int    `json:"event_id" example:"88"`
	GiftName string `json:"gift_name" example:"Rose"`
	Party    string `json:"party" example:"guest"`
	Total    int64  `json:"total" example:"15"`
	Host     int64  `json:"host" example:"0"`
	Guest    int64  `json:"guest" example:"15"`
}
