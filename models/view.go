package models

// ViewRequest selects how booking data is projected for the caller.
// It is either ApplicantView or ProducerView.
type ViewRequest interface {
	Viewer() string
	isViewRequest()
}

// ApplicantView hides the identity of other applicants.
type ApplicantView struct {
	UserID string
}

// ProducerView exposes who booked each slot.
type ProducerView struct {
	UserID     string
	ProducerID string
}

func (v ApplicantView) Viewer() string { return v.UserID }
func (v ProducerView) Viewer() string  { return v.UserID }

func (ApplicantView) isViewRequest() {}
func (ProducerView) isViewRequest()  {}

// ResolveView picks the projection from the optional producer id parameter.
func ResolveView(userID, producerID string) ViewRequest {
	if producerID == "" {
		return ApplicantView{UserID: userID}
	}
	return ProducerView{UserID: userID, ProducerID: producerID}
}
