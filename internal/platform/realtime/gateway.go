package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Gateway is the process-wide broadcast manager. It owns the hub and
// mediates all real-time fan-out: inbound subscription events from
// connected clients and outbound broadcasts from REST handlers.
//
// Every broadcast method is nil-receiver safe, so callers may hold a
// Gateway obtained from Get() before Initialize ran; broadcasts made
// through a nil gateway silently no-op. A committed write must never fail
// because the real-time layer is down.
type Gateway struct {
	hub *Hub
	log zerolog.Logger
}

var (
	instance *Gateway
	initOnce sync.Once
)

// Initialize creates the singleton gateway on first call and returns the
// same instance on every subsequent call, guarding against duplicate hub
// creation on repeated wiring. Inbound event dispatch is bound exactly
// once, at client registration time, regardless of how often Initialize
// is called.
func Initialize(logger zerolog.Logger) *Gateway {
	initOnce.Do(func() {
		instance = newGateway(logger)
	})
	return instance
}

// Get returns the gateway, or nil before Initialize has been called.
func Get() *Gateway {
	return instance
}

func newGateway(logger zerolog.Logger) *Gateway {
	return &Gateway{
		hub: NewHub(),
		log: logger,
	}
}

// Hub exposes the underlying hub for connection registration.
func (g *Gateway) Hub() *Hub {
	if g == nil {
		return nil
	}
	return g.hub
}

// ---------------------------------------------------------------------------
// Inbound event dispatch
// ---------------------------------------------------------------------------

// HandleMessage processes one inbound frame from a client. Unknown events
// and malformed payloads are dropped; there is no rejection protocol back
// to the sender. Identity fields are only touched from the client's own
// reader goroutine.
func (g *Gateway) HandleMessage(c *Client, raw []byte) {
	var msg clientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return
	}

	switch msg.Event {
	case eventAuthJoin:
		var p authJoinPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			return
		}
		c.UserID = p.UserID
		c.Role = p.Role
		g.hub.Join(c, RoleRoom(p.Role))
		g.hub.Join(c, UserRoom(p.UserID))
		g.log.Debug().Str("conn", c.ID).Str("user", p.UserID).Str("role", p.Role).Msg("client joined")

	case eventAuthLeave:
		// Disconnect handling is authoritative for cleanup; nothing to do.

	case eventQueueJoinRoom:
		var p queueRoomPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			return
		}
		g.hub.Join(c, QueueRoom(p.Room))

	case eventQueueLeaveRoom:
		var p queueRoomPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			return
		}
		g.hub.Leave(c, QueueRoom(p.Room))

	case eventQueueCallPatient:
		g.relayQueueStatus(c, msg.Data, "called")

	case eventQueueCompletePatient:
		g.relayQueueStatus(c, msg.Data, "completed")

	case eventSubscribeAppointments:
		var p subscribeAppointmentsPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil && len(msg.Data) > 0 {
			return
		}
		g.hub.Join(c, FamilyAppointments.Room(p.DoctorID))

	case eventSubscribePrescriptions:
		var p subscribePrescriptionsPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil && len(msg.Data) > 0 {
			return
		}
		scope := p.DoctorID
		if scope == "" {
			scope = p.Status
		}
		g.hub.Join(c, FamilyPrescriptions.Room(scope))

	case eventSubscribeLabOrders:
		var p subscribeLabOrdersPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil && len(msg.Data) > 0 {
			return
		}
		g.hub.Join(c, FamilyLabOrders.Room(p.DoctorID))

	case eventSubscribeNotifications:
		var p subscribeNotificationsPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			return
		}
		g.hub.Join(c, NotificationsRoom(p.UserID))

	case eventUnsubscribeAppointments:
		g.hub.LeaveFamily(c, FamilyAppointments)

	case eventUnsubscribePrescriptions:
		g.hub.LeaveFamily(c, FamilyPrescriptions)

	case eventUnsubscribeLabOrders:
		g.hub.LeaveFamily(c, FamilyLabOrders)

	case eventUnsubscribeNotifications:
		g.hub.LeaveFamily(c, FamilyNotifications)
	}
}

// relayQueueStatus forwards a queue action to everyone else watching that
// doctor's queue. The sender is excluded: it already knows the result of
// its own action.
func (g *Gateway) relayQueueStatus(c *Client, data json.RawMessage, status string) {
	var p queuePatientPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return
	}
	g.hub.Relay(QueueRoom(p.DoctorID), c, Event{
		Event: EventQueueStatusChanged,
		Data:  queueStatusChangedPayload{PatientID: p.PatientID, Status: status},
	})
}

// ---------------------------------------------------------------------------
// Outbound broadcasts (fire-and-forget, nil-safe)
// ---------------------------------------------------------------------------

// BroadcastQueueUpdated pushes a full queue snapshot to every client.
func (g *Gateway) BroadcastQueueUpdated(queue interface{}) {
	if g == nil {
		return
	}
	g.hub.BroadcastAll(Event{Event: EventQueueUpdated, Data: queueUpdatedPayload{Queue: queue}})
}

// BroadcastQueuePatientAdded announces a patient joining a queue.
func (g *Gateway) BroadcastQueuePatientAdded(patient interface{}, position int) {
	if g == nil {
		return
	}
	g.hub.BroadcastAll(Event{Event: EventQueuePatientAdded, Data: queuePatientAddedPayload{Patient: patient, Position: position}})
}

// BroadcastQueuePatientRemoved announces a patient leaving a queue.
func (g *Gateway) BroadcastQueuePatientRemoved(patientID string) {
	if g == nil {
		return
	}
	g.hub.BroadcastAll(Event{Event: EventQueuePatientRemoved, Data: queuePatientRemovedPayload{PatientID: patientID}})
}

// BroadcastAppointmentCreated targets the doctor's appointment room, or the
// catch-all room when the caller has no doctor scope.
func (g *Gateway) BroadcastAppointmentCreated(doctorID string, appointment interface{}) {
	if g == nil {
		return
	}
	g.hub.Broadcast(FamilyAppointments.Room(doctorID), Event{Event: EventAppointmentCreated, Data: appointmentPayload{Appointment: appointment}})
}

// BroadcastAppointmentUpdated targets the doctor's appointment room.
func (g *Gateway) BroadcastAppointmentUpdated(doctorID string, appointment interface{}) {
	if g == nil {
		return
	}
	g.hub.Broadcast(FamilyAppointments.Room(doctorID), Event{Event: EventAppointmentUpdated, Data: appointmentPayload{Appointment: appointment}})
}

// BroadcastAppointmentCancelled targets the doctor's appointment room.
func (g *Gateway) BroadcastAppointmentCancelled(doctorID, appointmentID string) {
	if g == nil {
		return
	}
	g.hub.Broadcast(FamilyAppointments.Room(doctorID), Event{Event: EventAppointmentCancelled, Data: appointmentCancelledPayload{AppointmentID: appointmentID}})
}

// BroadcastPrescriptionCreated targets the doctor's prescription room.
func (g *Gateway) BroadcastPrescriptionCreated(doctorID string, prescription interface{}) {
	if g == nil {
		return
	}
	g.hub.Broadcast(FamilyPrescriptions.Room(doctorID), Event{Event: EventPrescriptionCreated, Data: prescriptionPayload{Prescription: prescription}})
}

// BroadcastPrescriptionStatusChanged targets the doctor's prescription room.
func (g *Gateway) BroadcastPrescriptionStatusChanged(doctorID, prescriptionID, status string) {
	if g == nil {
		return
	}
	g.hub.Broadcast(FamilyPrescriptions.Room(doctorID), Event{Event: EventPrescriptionStatusChanged, Data: prescriptionStatusPayload{PrescriptionID: prescriptionID, Status: status}})
}

// BroadcastPrescriptionDelivered targets the doctor's prescription room.
func (g *Gateway) BroadcastPrescriptionDelivered(doctorID, prescriptionID, deliveredBy string) {
	if g == nil {
		return
	}
	g.hub.Broadcast(FamilyPrescriptions.Room(doctorID), Event{Event: EventPrescriptionDelivered, Data: prescriptionDeliveredPayload{PrescriptionID: prescriptionID, DeliveredBy: deliveredBy}})
}

// BroadcastLabOrderCreated targets the doctor's lab-order room.
func (g *Gateway) BroadcastLabOrderCreated(doctorID string, labOrder interface{}) {
	if g == nil {
		return
	}
	g.hub.Broadcast(FamilyLabOrders.Room(doctorID), Event{Event: EventLabOrderCreated, Data: labOrderPayload{LabOrder: labOrder}})
}

// BroadcastLabOrderStatusChanged targets the doctor's lab-order room.
func (g *Gateway) BroadcastLabOrderStatusChanged(doctorID, labOrderID, status string) {
	if g == nil {
		return
	}
	g.hub.Broadcast(FamilyLabOrders.Room(doctorID), Event{Event: EventLabOrderStatusChanged, Data: labOrderStatusPayload{LabOrderID: labOrderID, Status: status}})
}

// BroadcastLabOrderResultsReady targets the doctor's lab-order room.
func (g *Gateway) BroadcastLabOrderResultsReady(doctorID, labOrderID, results string) {
	if g == nil {
		return
	}
	g.hub.Broadcast(FamilyLabOrders.Room(doctorID), Event{Event: EventLabOrderResultsReady, Data: labOrderResultsPayload{LabOrderID: labOrderID, Results: results}})
}

// BroadcastInvoiceCreated announces a new invoice to every client; billing
// views filter client-side.
func (g *Gateway) BroadcastInvoiceCreated(invoice interface{}) {
	if g == nil {
		return
	}
	g.hub.BroadcastAll(Event{Event: EventInvoiceCreated, Data: invoiceCreatedPayload{Invoice: invoice}})
}

// BroadcastPaymentProcessed announces a processed payment to every client.
func (g *Gateway) BroadcastPaymentProcessed(payment interface{}, invoiceID string) {
	if g == nil {
		return
	}
	g.hub.BroadcastAll(Event{Event: EventPaymentProcessed, Data: paymentProcessedPayload{Payment: payment, InvoiceID: invoiceID}})
}

// BroadcastNotification addresses a notification to a single user's room.
func (g *Gateway) BroadcastNotification(userID, notificationType, message string, data interface{}) {
	if g == nil {
		return
	}
	g.hub.Broadcast(NotificationsRoom(userID), Event{Event: EventNotificationNew, Data: notificationPayload{
		UserID:  userID,
		Type:    notificationType,
		Message: message,
		Data:    data,
	}})
}

// BroadcastSystemMaintenance warns every client of scheduled maintenance.
func (g *Gateway) BroadcastSystemMaintenance(message string, scheduledTime *time.Time) {
	if g == nil {
		return
	}
	p := systemMaintenancePayload{Message: message}
	if scheduledTime != nil {
		p.ScheduledTime = scheduledTime.Format(time.RFC3339)
	}
	g.hub.BroadcastAll(Event{Event: EventSystemMaintenance, Data: p})
}

// BroadcastSystemAlert pushes a system-level alert to every client.
func (g *Gateway) BroadcastSystemAlert(level, message string) {
	if g == nil {
		return
	}
	g.hub.BroadcastAll(Event{Event: EventSystemAlert, Data: systemAlertPayload{Level: level, Message: message}})
}
