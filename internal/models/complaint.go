package models

// ComplaintStatusOpen is the only status this service assigns; transitions
// are handled elsewhere.
const ComplaintStatusOpen = "Open"

// ComplaintsCollection is created lazily on first submission.
const ComplaintsCollection = "complaints"

// Complaint is an immutable ticket referencing a collection/document pair.
type Complaint struct {
	ID          ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	IDNumber    string   `bson:"id_number" json:"id_number"`
	Name        string   `bson:"name" json:"name"`
	EmployeeID  string   `bson:"emp_id,omitempty" json:"emp_id,omitempty"`
	Collection  string   `bson:"collection" json:"collection"`
	ComplaintOn string   `bson:"complaint_on" json:"complaint_on"`
	Complaint   string   `bson:"complaint" json:"complaint"`
	Status      string   `bson:"status" json:"status"`
}

// ComplaintParams is the submission form input.
type ComplaintParams struct {
	Collection  string `json:"collection" validate:"required"`
	DocumentKey string `json:"document_key" validate:"required"`
	Name        string `json:"name"`
	EmployeeID  string `json:"employee_id"`
	Details     string `json:"details"`
}
