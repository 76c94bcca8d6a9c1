package service

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complaint-service/internal/model"
)

func validInput() CreateComplaintInput {
	return CreateComplaintInput{
		VehicleNumber:    "KA-01-AB-1234",
		VehicleType:      "motorcycle",
		VehicleModel:     "Yamaha R15",
		VehicleColor:     "black",
		TheftDate:        "2024-01-15T12:00",
		TheftLocation:    "MG Road parking lot",
		ComplainantName:  "Asha Rao",
		ComplainantPhone: "+91 98765 43210",
		ComplainantEmail: "asha@example.com",
	}
}

func TestValidateComplaint_AcceptsCompleteInput(t *testing.T) {
	assert.Empty(t, ValidateComplaint(validInput()))
}

func TestValidateComplaint_RequiredFields(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*CreateComplaintInput)
		field   string
		message string
	}{
		{"vehicle number", func(i *CreateComplaintInput) { i.VehicleNumber = "   " }, "vehicleNumber", "Vehicle number is required"},
		{"vehicle type", func(i *CreateComplaintInput) { i.VehicleType = "" }, "vehicleType", "Vehicle type is required"},
		{"vehicle model", func(i *CreateComplaintInput) { i.VehicleModel = "" }, "vehicleModel", "Vehicle model is required"},
		{"theft date", func(i *CreateComplaintInput) { i.TheftDate = "" }, "theftDate", "Theft date is required"},
		{"theft location", func(i *CreateComplaintInput) { i.TheftLocation = "" }, "theftLocation", "Theft location is required"},
		{"name", func(i *CreateComplaintInput) { i.ComplainantName = "" }, "complainantName", "Complainant name is required"},
		{"phone", func(i *CreateComplaintInput) { i.ComplainantPhone = "" }, "complainantPhone", "Complainant phone is required"},
		{"email missing", func(i *CreateComplaintInput) { i.ComplainantEmail = "" }, "complainantEmail", "Complainant email is required"},
		{"email malformed", func(i *CreateComplaintInput) { i.ComplainantEmail = "not-an-email" }, "complainantEmail", "Valid email is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)

			errs := ValidateComplaint(input)

			require.Len(t, errs, 1)
			assert.Equal(t, tc.field, errs[0].Field)
			assert.Equal(t, tc.message, errs[0].Message)
		})
	}
}

func TestValidateComplaint_FirstMessageIsHeadline(t *testing.T) {
	errs := ValidateComplaint(CreateComplaintInput{})

	require.NotEmpty(t, errs)
	assert.Equal(t, "Vehicle number is required", errs.First())
	assert.Equal(t, errs.First(), errs.Error())
}

func TestValidateComplaint_OptionalFieldsMayBeEmpty(t *testing.T) {
	input := validInput()
	input.VehicleColor = ""
	input.Description = ""
	input.ComplainantAddress = ""

	assert.Empty(t, ValidateComplaint(input))
}

func TestGenerateCaseNumber_Shape(t *testing.T) {
	pattern := regexp.MustCompile(`^VTC-\d{13,}-\d{1,3}$`)
	for i := 0; i < 50; i++ {
		assert.Regexp(t, pattern, generateCaseNumber())
	}
}

func TestBuildFilter(t *testing.T) {
	t.Run("all and empty leave status unfiltered", func(t *testing.T) {
		for _, status := range []string{"", "all", "  all  "} {
			filter, err := buildFilter(ListComplaintsOptions{Status: status})
			require.NoError(t, err)
			assert.Nil(t, filter.Status)
		}
	})

	t.Run("known status is passed through", func(t *testing.T) {
		filter, err := buildFilter(ListComplaintsOptions{Status: "under_investigation"})
		require.NoError(t, err)
		require.NotNil(t, filter.Status)
		assert.Equal(t, model.ComplaintStatusUnderInvestigation, *filter.Status)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		_, err := buildFilter(ListComplaintsOptions{Status: "escalated"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("search term is trimmed", func(t *testing.T) {
		filter, err := buildFilter(ListComplaintsOptions{Search: "  VTC-17  "})
		require.NoError(t, err)
		assert.Equal(t, "VTC-17", filter.Search)
	})
}

func TestValidateRegister(t *testing.T) {
	ok := RegisterInput{Name: "Asha Rao", Email: "asha@example.com", Phone: "+91 98765 43210", Password: "secret1"}
	assert.Empty(t, validateRegister(ok))

	short := ok
	short.Password = "12345"
	errs := validateRegister(short)
	require.Len(t, errs, 1)
	assert.Equal(t, "Password must be at least 6 characters", errs[0].Message)

	bad := ok
	bad.Email = "asha@example"
	errs = validateRegister(bad)
	require.Len(t, errs, 1)
	assert.Equal(t, "email", errs[0].Field)
}
