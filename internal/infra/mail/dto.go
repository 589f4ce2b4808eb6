package mail

type HotLeadAlertData struct {
	Name         string
	Email        string
	BusinessType string
	Summary      string
	QualityScore string
	NextAction   string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
}
