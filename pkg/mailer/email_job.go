package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for the email
// worker to deliver.
type EmailJob struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}
