package entities

type BookingEmailData struct {
	UserName           string
	BookingCode        string
	ServiceName        string
	StartTimeFormatted string
	EndTimeFormatted   string
	HangoutLink        string
	CurrentYear        int
	Language           string
	Status             string
}
