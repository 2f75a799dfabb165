package util

type Envelope map[string]any

func Error(message string) Envelope {
	return Envelope{"error": message}
}

// Message is the shape the staff front end reads for outcomes of form posts.
func Message(message string) Envelope {
	return Envelope{"message": message}
}

func Data(key string, value any) Envelope {
	return Envelope{key: value}
}
