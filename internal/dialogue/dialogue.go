// Package dialogue implements the conversational complaint intake: a
// strictly linear, one-question-at-a-time state machine that accumulates a
// complaint draft and submits it through a Gateway. The engine is
// synchronous and timer-free; reply pacing belongs to the transport.
package dialogue

import (
	"context"
	"errors"
	"fmt"
)

type State int

const (
	StateIdle State = iota
	StateFiling
	StateTracking
)

// Step is the question the filing flow is currently waiting on. It only
// moves forward; a fresh "file" selection is the only way back to the start.
type Step int

const (
	StepVehicleNumber Step = iota + 1
	StepVehicleType
	StepVehicleModel
	StepVehicleColor
	StepTheftDate
	StepTheftLocation
	StepDescription
	StepName
	StepPhone
	StepEmail
	StepAddress // terminal: its answer triggers submission
)

// Draft is the complaint being assembled. Description and address stay
// empty when the user skips them.
type Draft struct {
	VehicleNumber      string
	VehicleType        string
	VehicleModel       string
	VehicleColor       string
	TheftDate          string
	TheftLocation      string
	Description        string
	ComplainantName    string
	ComplainantPhone   string
	ComplainantEmail   string
	ComplainantAddress string
}

type ReplyKind int

const (
	// ReplyMessage is a plain bot utterance.
	ReplyMessage ReplyKind = iota
	// ReplyOptions carries quick-select options alongside its text.
	ReplyOptions
	// ReplyGreeting re-presents the two entry options after a reset; the
	// transport may delay it.
	ReplyGreeting
	// ReplyLogout instructs the transport to force a logout and stop.
	ReplyLogout
)

type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type Reply struct {
	Kind    ReplyKind `json:"kind"`
	Text    string    `json:"text,omitempty"`
	Options []Option  `json:"options,omitempty"`
}

const (
	OptionFile  = "file"
	OptionTrack = "track"
	OptionRetry = "retry"
)

var entryOptions = []Option{
	{ID: OptionFile, Label: "File New Complaint"},
	{ID: OptionTrack, Label: "Track Complaint Status"},
}

// Receipt is what a successful submission returns.
type Receipt struct {
	CaseNumber  string
	ComplaintID int64
}

// Summary is one tracked complaint as reported back to the user.
type Summary struct {
	CaseNumber    string
	VehicleNumber string
	VehicleType   string
	Status        string
	TheftDate     string
	FiledOn       string
}

// ErrUnauthorized means the session credential was rejected; the dialogue
// halts and the transport must log the user out.
var ErrUnauthorized = errors.New("session credential rejected")

// RejectedError is a server-side validation rejection; Message is the first
// validation failure and is surfaced verbatim.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	return e.Message
}

// Gateway is the dialogue's only external dependency. Both calls are scoped
// to the authenticated user behind the session.
type Gateway interface {
	Submit(ctx context.Context, draft Draft) (*Receipt, error)
	Search(ctx context.Context, term string) ([]Summary, error)
}

// Session owns one user's conversation: state, step cursor and draft. One
// instance per connection, never shared.
type Session struct {
	gateway Gateway

	state State
	step  Step
	draft Draft

	// retained draft after a transport failure at the terminal step, so a
	// retry can resubmit without re-asking the eleven questions
	retryDraft *Draft
}

func NewSession(gateway Gateway) *Session {
	return &Session{gateway: gateway, state: StateIdle}
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) Step() Step {
	return s.step
}

// Greeting is the idle prompt shown when the conversation opens and after a
// completed filing resets.
func (s *Session) Greeting() []Reply {
	return []Reply{
		message("Hello! I'm here to help you file a vehicle theft complaint. I can also help you track your existing complaints."),
		{Kind: ReplyOptions, Text: "What would you like to do?", Options: entryOptions},
	}
}

// HandleOption processes an explicit option selection. Unknown ids fall back
// to the idle prompt.
func (s *Session) HandleOption(ctx context.Context, id string) []Reply {
	switch id {
	case OptionFile:
		return s.startFiling()
	case OptionTrack:
		return s.startTracking()
	case OptionRetry:
		return s.retrySubmission(ctx)
	default:
		return []Reply{optionPrompt()}
	}
}

// HandleMessage processes one free-text utterance according to the current
// state. Free text never starts a flow from idle.
func (s *Session) HandleMessage(ctx context.Context, text string) []Reply {
	switch s.state {
	case StateFiling:
		return s.advance(ctx, text)
	case StateTracking:
		return s.track(ctx, text)
	default:
		return []Reply{optionPrompt()}
	}
}

func (s *Session) startFiling() []Reply {
	s.state = StateFiling
	s.step = StepVehicleNumber
	s.draft = Draft{}
	s.retryDraft = nil
	return []Reply{
		message("Great! Let's file your vehicle theft complaint. I'll need some information from you."),
		message("Let's start with the vehicle details. What is your vehicle registration number?"),
	}
}

func (s *Session) startTracking() []Reply {
	s.state = StateTracking
	s.step = 0
	s.draft = Draft{}
	s.retryDraft = nil
	return []Reply{
		message("I can help you track your complaint status. Please provide your case number or vehicle registration number."),
	}
}

// advance consumes one answer, stores it with the step's normalization rule
// and moves the cursor forward. The terminal step submits immediately.
func (s *Session) advance(ctx context.Context, text string) []Reply {
	switch s.step {
	case StepVehicleNumber:
		s.draft.VehicleNumber = text
		s.step = StepVehicleType
		return []Reply{
			message("Got it! Vehicle number: " + text),
			message("What type of vehicle is it? (e.g., Car, Motorcycle, Scooter, Bicycle, Truck, Other)"),
		}
	case StepVehicleType:
		vehicleType := ClassifyVehicleType(text)
		s.draft.VehicleType = vehicleType
		s.step = StepVehicleModel
		return []Reply{
			message("Vehicle type: " + vehicleType),
			message("What is the vehicle model? (e.g., Honda City, Yamaha R15)"),
		}
	case StepVehicleModel:
		s.draft.VehicleModel = text
		s.step = StepVehicleColor
		return []Reply{
			message("Model: " + text),
			message("What color is the vehicle?"),
		}
	case StepVehicleColor:
		s.draft.VehicleColor = text
		s.step = StepTheftDate
		return []Reply{
			message("Color: " + text),
			message("When did the theft occur? Please provide date and time (e.g., 2024-01-15 14:30 or just date if time unknown)"),
		}
	case StepTheftDate:
		s.draft.TheftDate = NormalizeTheftDate(text)
		s.step = StepTheftLocation
		return []Reply{
			message("Theft date: " + text),
			message("Where did the theft occur? Please provide the location/address."),
		}
	case StepTheftLocation:
		s.draft.TheftLocation = text
		s.step = StepDescription
		return []Reply{
			message("Location: " + text),
			message("Any additional description or details about the incident? (Type 'skip' if none)"),
		}
	case StepDescription:
		if !isSkip(text) {
			s.draft.Description = text
		}
		s.step = StepName
		return []Reply{
			message("Now I need your contact information."),
			message("What is your full name?"),
		}
	case StepName:
		s.draft.ComplainantName = text
		s.step = StepPhone
		return []Reply{
			message("Name: " + text),
			message("What is your phone number?"),
		}
	case StepPhone:
		s.draft.ComplainantPhone = text
		s.step = StepEmail
		return []Reply{
			message("Phone: " + text),
			message("What is your email address?"),
		}
	case StepEmail:
		s.draft.ComplainantEmail = text
		s.step = StepAddress
		return []Reply{
			message("Email: " + text),
			message("What is your address? (Type 'skip' if you prefer not to provide)"),
		}
	case StepAddress:
		if !isSkip(text) {
			s.draft.ComplainantAddress = text
		}
		replies := []Reply{message("Perfect! I have all the information. Submitting your complaint now...")}
		return append(replies, s.submit(ctx, s.draft)...)
	default:
		// Inconsistent cursor; fall back to the idle prompt rather than fail.
		return []Reply{message("I'm ready to help. Please select an option from above.")}
	}
}

// submit runs the single suspending call of the dialogue. The four outcomes
// (success, validation rejection, credential rejection, transport failure)
// are mutually exclusive and each leaves the session in a documented state.
func (s *Session) submit(ctx context.Context, draft Draft) []Reply {
	receipt, err := s.gateway.Submit(ctx, draft)
	switch {
	case err == nil:
		s.reset()
		return []Reply{
			message("Complaint filed successfully!"),
			message("Your case number is: " + receipt.CaseNumber),
			message("Please save this case number for tracking purposes."),
			message("You can track your complaint status anytime by clicking 'Track Complaint Status' or visiting your dashboard."),
			greeting(),
		}
	case errors.Is(err, ErrUnauthorized):
		s.reset()
		return []Reply{
			message("Session expired. Please logout and login again."),
			{Kind: ReplyLogout},
		}
	default:
		var rejected *RejectedError
		if errors.As(err, &rejected) {
			// Draft cannot be salvaged: the flow restarts from scratch.
			return []Reply{
				message("Sorry, there was an error: " + rejected.Message),
				{Kind: ReplyOptions, Text: "Would you like to try again? Click 'File New Complaint'.", Options: entryOptions},
			}
		}
		// Transport failure: the draft survives for one explicit retry.
		s.retryDraft = &draft
		return []Reply{
			message("Network error. Please check your connection and try again."),
			{Kind: ReplyOptions, Text: "You can retry the submission or start over.", Options: []Option{
				{ID: OptionRetry, Label: "Retry Submission"},
				{ID: OptionFile, Label: "Start Over"},
			}},
		}
	}
}

// retrySubmission resubmits a draft kept after a transport failure, without
// re-asking the questions.
func (s *Session) retrySubmission(ctx context.Context) []Reply {
	if s.state != StateFiling || s.retryDraft == nil {
		return []Reply{optionPrompt()}
	}
	draft := *s.retryDraft
	s.retryDraft = nil
	replies := []Reply{message("Resubmitting your complaint...")}
	return append(replies, s.submit(ctx, draft)...)
}

// track runs one repeatable search; the session stays in tracking state.
func (s *Session) track(ctx context.Context, text string) []Reply {
	term := text
	replies := []Reply{message(fmt.Sprintf("Searching for complaints with %q...", term))}

	summaries, err := s.gateway.Search(ctx, term)
	switch {
	case errors.Is(err, ErrUnauthorized):
		s.reset()
		return append(replies,
			message("Session expired. Please logout and login again."),
			Reply{Kind: ReplyLogout},
		)
	case err != nil:
		return append(replies, message("Error: Failed to search complaints. Please try again."))
	case len(summaries) == 0:
		return append(replies,
			message(fmt.Sprintf("No complaints found matching %q.", term)),
			message("Please check your case number or vehicle registration number and try again."),
			message("You can also go to your Dashboard to see all your complaints."),
		)
	default:
		replies = append(replies, message(fmt.Sprintf("Found %d complaint(s):", len(summaries))))
		for _, summary := range summaries {
			replies = append(replies, message(formatSummary(summary)))
		}
		return append(replies, message("For more details, visit your Dashboard or ask me about a specific case number."))
	}
}

// reset discards the draft and returns to idle. Called on success, on
// credential rejection and never on a plain transport failure.
func (s *Session) reset() {
	s.state = StateIdle
	s.step = 0
	s.draft = Draft{}
	s.retryDraft = nil
}

func formatSummary(s Summary) string {
	return fmt.Sprintf(
		"Case Number: %s\nVehicle: %s (%s)\nStatus: %s\nTheft Date: %s\nFiled On: %s",
		s.CaseNumber, s.VehicleNumber, s.VehicleType, FormatStatus(s.Status), s.TheftDate, s.FiledOn,
	)
}

func message(text string) Reply {
	return Reply{Kind: ReplyMessage, Text: text}
}

func greeting() Reply {
	return Reply{Kind: ReplyGreeting, Text: "What would you like to do?", Options: entryOptions}
}

func optionPrompt() Reply {
	return Reply{
		Kind:    ReplyOptions,
		Text:    "Please select an option: 'File New Complaint' or 'Track Complaint Status'",
		Options: entryOptions,
	}
}
