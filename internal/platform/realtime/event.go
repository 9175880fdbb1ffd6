package realtime

import "encoding/json"

// Outbound event names (server -> client).
const (
	EventQueueUpdated              = "queue:updated"
	EventQueuePatientAdded         = "queue:patient-added"
	EventQueuePatientRemoved       = "queue:patient-removed"
	EventQueueStatusChanged        = "queue:status-changed"
	EventAppointmentCreated        = "appointment:created"
	EventAppointmentUpdated        = "appointment:updated"
	EventAppointmentCancelled      = "appointment:cancelled"
	EventPrescriptionCreated       = "prescription:created"
	EventPrescriptionStatusChanged = "prescription:status-changed"
	EventPrescriptionDelivered     = "prescription:delivered"
	EventLabOrderCreated           = "lab-order:created"
	EventLabOrderStatusChanged     = "lab-order:status-changed"
	EventLabOrderResultsReady      = "lab-order:results-ready"
	EventInvoiceCreated            = "invoice:created"
	EventPaymentProcessed          = "payment:processed"
	EventNotificationNew           = "notification:new"
	EventSystemMaintenance         = "system:maintenance"
	EventSystemAlert               = "system:alert"
)

// Inbound event names (client -> server).
const (
	eventAuthJoin                 = "auth:join"
	eventAuthLeave                = "auth:leave"
	eventQueueJoinRoom            = "queue:join-room"
	eventQueueLeaveRoom           = "queue:leave-room"
	eventQueueCallPatient         = "queue:call-patient"
	eventQueueCompletePatient     = "queue:complete-patient"
	eventSubscribeAppointments    = "subscribe:appointments"
	eventSubscribePrescriptions   = "subscribe:prescriptions"
	eventSubscribeLabOrders       = "subscribe:lab-orders"
	eventSubscribeNotifications   = "subscribe:notifications"
	eventUnsubscribeAppointments  = "unsubscribe:appointments"
	eventUnsubscribePrescriptions = "unsubscribe:prescriptions"
	eventUnsubscribeLabOrders     = "unsubscribe:lab-orders"
	eventUnsubscribeNotifications = "unsubscribe:notifications"
)

// Event is the wire envelope for every frame in both directions.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// clientMessage is an inbound frame before its payload is decoded.
type clientMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Inbound payload shapes. Missing fields stay zero-valued; handlers treat
// absent scopes as "all" rather than rejecting the frame.

type authJoinPayload struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

type queueRoomPayload struct {
	Room string `json:"room"`
}

type queuePatientPayload struct {
	PatientID string `json:"patientId"`
	DoctorID  string `json:"doctorId"`
}

type subscribeAppointmentsPayload struct {
	DoctorID string `json:"doctorId,omitempty"`
	Date     string `json:"date,omitempty"`
}

type subscribePrescriptionsPayload struct {
	DoctorID string `json:"doctorId,omitempty"`
	Status   string `json:"status,omitempty"`
}

type subscribeLabOrdersPayload struct {
	DoctorID string `json:"doctorId,omitempty"`
	Status   string `json:"status,omitempty"`
}

type subscribeNotificationsPayload struct {
	UserID string `json:"userId"`
}

// Outbound payload shapes.

type queueStatusChangedPayload struct {
	PatientID string `json:"patientId"`
	Status    string `json:"status"`
}

type queuePatientAddedPayload struct {
	Patient  interface{} `json:"patient"`
	Position int         `json:"position"`
}

type queuePatientRemovedPayload struct {
	PatientID string `json:"patientId"`
}

type queueUpdatedPayload struct {
	Queue interface{} `json:"queue"`
}

type appointmentPayload struct {
	Appointment interface{} `json:"appointment"`
}

type appointmentCancelledPayload struct {
	AppointmentID string `json:"appointmentId"`
}

type prescriptionPayload struct {
	Prescription interface{} `json:"prescription"`
}

type prescriptionStatusPayload struct {
	PrescriptionID string `json:"prescriptionId"`
	Status         string `json:"status"`
}

type prescriptionDeliveredPayload struct {
	PrescriptionID string `json:"prescriptionId"`
	DeliveredBy    string `json:"deliveredBy"`
}

type labOrderPayload struct {
	LabOrder interface{} `json:"labOrder"`
}

type labOrderStatusPayload struct {
	LabOrderID string `json:"labOrderId"`
	Status     string `json:"status"`
}

type labOrderResultsPayload struct {
	LabOrderID string `json:"labOrderId"`
	Results    string `json:"results"`
}

type invoiceCreatedPayload struct {
	Invoice interface{} `json:"invoice"`
}

type paymentProcessedPayload struct {
	Payment   interface{} `json:"payment"`
	InvoiceID string      `json:"invoiceId"`
}

type notificationPayload struct {
	UserID  string      `json:"userId"`
	Type    string      `json:"type"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type systemMaintenancePayload struct {
	Message       string `json:"message"`
	ScheduledTime string `json:"scheduledTime,omitempty"`
}

type systemAlertPayload struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}
