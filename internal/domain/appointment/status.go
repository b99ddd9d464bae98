package appointment

// ===============================
// Status
// ===============================

type Status string

const (
	StatusProposed        Status = "proposed"
	StatusConfirmed       Status = "confirmed"
	StatusCounterProposed Status = "counter_proposed"
	StatusCancelled       Status = "cancelled"
	StatusCompleted       Status = "completed"
	StatusNoShow          Status = "no_show"
)

func InitialStatus() Status {
	return StatusProposed
}

// Terminal statuses admit no further transition.
func (s Status) Terminal() bool {
	switch s {
	case StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

func (s Status) Valid() bool {
	switch s {
	case StatusProposed, StatusConfirmed, StatusCounterProposed,
		StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

// ===============================
// Actions & actors
// ===============================

type Action string

const (
	ActionConfirm        Action = "confirm"
	ActionCounterPropose Action = "counter_propose"
	ActionCancel         Action = "cancel"
	ActionAcceptCounter  Action = "accept_counter"
	ActionRejectCounter  Action = "reject_counter"
	ActionComplete       Action = "complete"
	ActionMarkNoShow     Action = "mark_no_show"
	ActionEdit           Action = "edit"
)

type Actor string

const (
	ActorShop   Actor = "shop"
	ActorClient Actor = "client"
)

// ===============================
// Transition table
// ===============================

type rule struct {
	from   []Status
	actors []Actor
	to     Status // unset for edit, which keeps the current status
}

var transitions = map[Action]rule{
	ActionConfirm: {
		from:   []Status{StatusProposed},
		actors: []Actor{ActorShop, ActorClient},
		to:     StatusConfirmed,
	},
	ActionCounterPropose: {
		from:   []Status{StatusProposed},
		actors: []Actor{ActorClient},
		to:     StatusCounterProposed,
	},
	ActionCancel: {
		from:   []Status{StatusProposed, StatusCounterProposed},
		actors: []Actor{ActorShop, ActorClient},
		to:     StatusCancelled,
	},
	ActionAcceptCounter: {
		from:   []Status{StatusCounterProposed},
		actors: []Actor{ActorShop},
		to:     StatusConfirmed,
	},
	ActionRejectCounter: {
		from:   []Status{StatusCounterProposed},
		actors: []Actor{ActorShop},
		to:     StatusCancelled,
	},
	ActionComplete: {
		from:   []Status{StatusConfirmed},
		actors: []Actor{ActorShop},
		to:     StatusCompleted,
	},
	ActionMarkNoShow: {
		from:   []Status{StatusConfirmed},
		actors: []Actor{ActorShop},
		to:     StatusNoShow,
	},
	ActionEdit: {
		from:   []Status{StatusProposed, StatusConfirmed},
		actors: []Actor{ActorShop},
	},
}

// NextStatus validates (current, action, actor) against the transition table
// and returns the resulting status. Every status change in the system goes
// through here; an illegal combination is reported, never silently ignored.
func NextStatus(current Status, action Action, actor Actor) (Status, error) {
	r, ok := transitions[action]
	if !ok {
		return "", &InvalidTransitionError{Current: current, Action: action}
	}

	allowedFrom := false
	for _, s := range r.from {
		if s == current {
			allowedFrom = true
			break
		}
	}
	if !allowedFrom {
		return "", &InvalidTransitionError{Current: current, Action: action}
	}

	allowedActor := false
	for _, a := range r.actors {
		if a == actor {
			allowedActor = true
			break
		}
	}
	if !allowedActor {
		return "", &InvalidTransitionError{Current: current, Action: action, Actor: actor}
	}

	if action == ActionEdit {
		return current, nil
	}
	return r.to, nil
}
