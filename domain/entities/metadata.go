package entities

// Metadata this struct contains extra information about the data that leaves the cleaner
// + RunID: identifier of the cleaning run that produced the data
// + Window: month of the data, YYYY-MM
// + Type: this field helps the consumer to recognize what type of data is
// + Stage: stage were the Metadata was constructed
// + Message: message with extra information
type Metadata struct {
	RunID   string `json:"run_id"`
	Window  string `json:"window"`
	Type    string `json:"type"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

func NewMetadata(runID string, window string, dataType string, stage string, message string) Metadata {
	return Metadata{
		RunID:   runID,
		Window:  window,
		Type:    dataType,
		Stage:   stage,
		Message: message,
	}
}

func (m Metadata) GetRunID() string {
	return m.RunID
}

func (m Metadata) GetType() string {
	return m.Type
}

func (m Metadata) GetWindow() string {
	return m.Window
}

func (m Metadata) GetStage() string {
	return m.Stage
}

func (m Metadata) GetMessage() string {
	return m.Message
}
