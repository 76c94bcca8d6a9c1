package dialogue

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGateway records submissions and searches and returns whatever the test
// configured.
type fakeGateway struct {
	submitted []Draft
	receipt   *Receipt
	submitErr error

	searchTerms []string
	summaries   []Summary
	searchErr   error
}

func (f *fakeGateway) Submit(_ context.Context, draft Draft) (*Receipt, error) {
	f.submitted = append(f.submitted, draft)
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	if f.receipt != nil {
		return f.receipt, nil
	}
	return &Receipt{CaseNumber: "VTC-1700000000000-42", ComplaintID: 1}, nil
}

func (f *fakeGateway) Search(_ context.Context, term string) ([]Summary, error) {
	f.searchTerms = append(f.searchTerms, term)
	return f.summaries, f.searchErr
}

var filingAnswers = []string{
	"KA-01-AB-1234",
	"it's a Motorbike",
	"Yamaha R15",
	"black",
	"2024-01-15",
	"MG Road parking lot",
	"Left it locked overnight",
	"Asha Rao",
	"+91 98765 43210",
	"asha@example.com",
	"12 Rose Villa, Bengaluru",
}

func runFiling(t *testing.T, session *Session, answers []string) []Reply {
	t.Helper()
	var last []Reply
	for _, answer := range answers {
		last = session.HandleMessage(context.Background(), answer)
		require.NotEmpty(t, last)
	}
	return last
}

func allText(replies []Reply) string {
	var out string
	for _, r := range replies {
		out += r.Text + "\n"
	}
	return out
}

func TestFilingFlow_CollectsAllFieldsAndSubmits(t *testing.T) {
	gw := &fakeGateway{}
	session := NewSession(gw)

	session.HandleOption(context.Background(), OptionFile)
	assert.Equal(t, StateFiling, session.State())
	assert.Equal(t, StepVehicleNumber, session.Step())

	last := runFiling(t, session, filingAnswers)

	require.Len(t, gw.submitted, 1, "terminal step must submit exactly once")
	draft := gw.submitted[0]
	assert.Equal(t, "KA-01-AB-1234", draft.VehicleNumber)
	assert.Equal(t, "motorcycle", draft.VehicleType)
	assert.Equal(t, "Yamaha R15", draft.VehicleModel)
	assert.Equal(t, "black", draft.VehicleColor)
	assert.Equal(t, "2024-01-15T12:00", draft.TheftDate)
	assert.Equal(t, "MG Road parking lot", draft.TheftLocation)
	assert.Equal(t, "Left it locked overnight", draft.Description)
	assert.Equal(t, "Asha Rao", draft.ComplainantName)
	assert.Equal(t, "+91 98765 43210", draft.ComplainantPhone)
	assert.Equal(t, "asha@example.com", draft.ComplainantEmail)
	assert.Equal(t, "12 Rose Villa, Bengaluru", draft.ComplainantAddress)

	assert.Contains(t, allText(last), "VTC-1700000000000-42")
	assert.Equal(t, StateIdle, session.State(), "successful submission resets the session")
	assert.Equal(t, ReplyGreeting, last[len(last)-1].Kind)
}

func TestFilingFlow_SkipLeavesOptionalFieldsEmpty(t *testing.T) {
	gw := &fakeGateway{}
	session := NewSession(gw)
	session.HandleOption(context.Background(), OptionFile)

	answers := make([]string, len(filingAnswers))
	copy(answers, filingAnswers)
	answers[6] = "  SKIP  " // description
	answers[10] = "Skip"    // address

	runFiling(t, session, answers)

	require.Len(t, gw.submitted, 1)
	assert.Empty(t, gw.submitted[0].Description)
	assert.Empty(t, gw.submitted[0].ComplainantAddress)
}

func TestFilingFlow_StepAdvancesOnePerUtterance(t *testing.T) {
	session := NewSession(&fakeGateway{})
	session.HandleOption(context.Background(), OptionFile)

	for i, answer := range filingAnswers[:10] {
		assert.Equal(t, Step(i+1), session.Step())
		session.HandleMessage(context.Background(), answer)
	}
	assert.Equal(t, StepAddress, session.Step())
}

func TestIdleFreeText_DoesNotStartAFlow(t *testing.T) {
	session := NewSession(&fakeGateway{})

	replies := session.HandleMessage(context.Background(), "I want to file a complaint")

	assert.Equal(t, StateIdle, session.State())
	require.Len(t, replies, 1)
	assert.Equal(t, ReplyOptions, replies[0].Kind)
	assert.Contains(t, replies[0].Text, "Please select an option")
}

func TestSubmission_AuthFailureForcesSingleLogout(t *testing.T) {
	gw := &fakeGateway{submitErr: ErrUnauthorized}
	session := NewSession(gw)
	session.HandleOption(context.Background(), OptionFile)

	last := runFiling(t, session, filingAnswers)

	logouts := 0
	for _, r := range last {
		if r.Kind == ReplyLogout {
			logouts++
		}
	}
	assert.Equal(t, 1, logouts)
	assert.Equal(t, ReplyLogout, last[len(last)-1].Kind, "no prompts after the logout signal")
	assert.Equal(t, StateIdle, session.State())
}

func TestSubmission_ValidationRejectionInvitesRestart(t *testing.T) {
	gw := &fakeGateway{submitErr: &RejectedError{Message: "Valid email is required"}}
	session := NewSession(gw)
	session.HandleOption(context.Background(), OptionFile)

	last := runFiling(t, session, filingAnswers)

	assert.Contains(t, allText(last), "Valid email is required")
	assert.Equal(t, StateFiling, session.State())
	assert.Equal(t, StepAddress, session.Step(), "cursor must not advance past the terminal step")

	// A fresh filing selection rebuilds the draft from zero.
	gw.submitErr = nil
	session.HandleOption(context.Background(), OptionFile)
	assert.Equal(t, StepVehicleNumber, session.Step())
	assert.Equal(t, Draft{}, session.draft)
}

func TestSubmission_NetworkFailureKeepsDraftForRetry(t *testing.T) {
	gw := &fakeGateway{submitErr: errors.New("dial tcp: connection refused")}
	session := NewSession(gw)
	session.HandleOption(context.Background(), OptionFile)

	last := runFiling(t, session, filingAnswers)
	assert.Contains(t, allText(last), "Network error")

	var optionIDs []string
	for _, r := range last {
		for _, opt := range r.Options {
			optionIDs = append(optionIDs, opt.ID)
		}
	}
	assert.Contains(t, optionIDs, OptionRetry)

	// Retry resubmits the identical draft without re-asking anything.
	gw.submitErr = nil
	replies := session.HandleOption(context.Background(), OptionRetry)

	require.Len(t, gw.submitted, 2)
	assert.Equal(t, gw.submitted[0], gw.submitted[1])
	assert.Contains(t, allText(replies), "VTC-1700000000000-42")
	assert.Equal(t, StateIdle, session.State())
}

func TestRetryOption_WithoutPendingDraftJustPrompts(t *testing.T) {
	session := NewSession(&fakeGateway{})

	replies := session.HandleOption(context.Background(), OptionRetry)

	require.Len(t, replies, 1)
	assert.Equal(t, ReplyOptions, replies[0].Kind)
}

func TestTracking_NoMatchesSuggestsDashboard(t *testing.T) {
	gw := &fakeGateway{}
	session := NewSession(gw)
	session.HandleOption(context.Background(), OptionTrack)

	replies := session.HandleMessage(context.Background(), "VTC-000")

	text := allText(replies)
	assert.Contains(t, text, `No complaints found matching "VTC-000"`)
	assert.Contains(t, text, "Dashboard")
	assert.Equal(t, []string{"VTC-000"}, gw.searchTerms)
	assert.Equal(t, StateTracking, session.State(), "tracking stays repeatable")
}

func TestTracking_FormatsEachMatch(t *testing.T) {
	gw := &fakeGateway{summaries: []Summary{
		{
			CaseNumber:    "VTC-1700000000000-7",
			VehicleNumber: "KA-01-AB-1234",
			VehicleType:   "motorcycle",
			Status:        "under_investigation",
			TheftDate:     "2024-01-15T12:00",
			FiledOn:       "Jan 16, 2024",
		},
		{
			CaseNumber:    "VTC-1700000000001-8",
			VehicleNumber: "KA-02-CD-5678",
			VehicleType:   "car",
			Status:        "pending",
			TheftDate:     "2024-02-01T09:30",
			FiledOn:       "Feb 1, 2024",
		},
	}}
	session := NewSession(gw)
	session.HandleOption(context.Background(), OptionTrack)

	replies := session.HandleMessage(context.Background(), "KA-0")

	text := allText(replies)
	assert.Contains(t, text, "Found 2 complaint(s):")
	assert.Contains(t, text, "VTC-1700000000000-7")
	assert.Contains(t, text, "Under Investigation")
	assert.Contains(t, text, "Filed On: Jan 16, 2024")
	assert.Contains(t, text, "KA-02-CD-5678")

	// Second query on the same session still works.
	session.HandleMessage(context.Background(), "VTC-1700000000001-8")
	assert.Len(t, gw.searchTerms, 2)
}

func TestTracking_SearchFailureReportsErrorAndStaysTracking(t *testing.T) {
	gw := &fakeGateway{searchErr: errors.New("query timeout")}
	session := NewSession(gw)
	session.HandleOption(context.Background(), OptionTrack)

	replies := session.HandleMessage(context.Background(), "VTC-1")

	assert.Contains(t, allText(replies), "Error: Failed to search complaints. Please try again.")
	assert.NotContains(t, allText(replies), "Network error")
	assert.Equal(t, StateTracking, session.State())
}

func TestTracking_AuthFailureForcesLogout(t *testing.T) {
	gw := &fakeGateway{searchErr: ErrUnauthorized}
	session := NewSession(gw)
	session.HandleOption(context.Background(), OptionTrack)

	replies := session.HandleMessage(context.Background(), "VTC-1")

	assert.Equal(t, ReplyLogout, replies[len(replies)-1].Kind)
	assert.Equal(t, StateIdle, session.State())
}

func TestUnknownOption_Prompts(t *testing.T) {
	session := NewSession(&fakeGateway{})

	replies := session.HandleOption(context.Background(), "bogus")

	require.Len(t, replies, 1)
	assert.Equal(t, ReplyOptions, replies[0].Kind)
}
