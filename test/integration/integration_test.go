package integration

import (
	"context"
	"os"
	"testing"

	"github.com/cucumber/godog"
	"github.com/stretchr/testify/require"
)

// wardenSuite runs the access-control features. WARDEN_FEATURE_TAGS narrows
// the run with a godog tag expression, for example "@revocation".
func wardenSuite(t *testing.T, tc *TestContext) godog.TestSuite {
	return godog.TestSuite{
		Name: "warden-access-control",
		ScenarioInitializer: func(sc *godog.ScenarioContext) {
			NewStepsContext(tc).RegisterSteps(sc)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/access.feature"},
			Tags:     os.Getenv("WARDEN_FEATURE_TAGS"),
			Strict:   true,
			TestingT: t,
		},
	}
}

func TestAccessControlFeatures(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") == "" {
		t.Skip("Skipping integration tests. Set INTEGRATION_TEST=1 to run.")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tc, err := NewTestContext(ctx)
	require.NoError(t, err, "starting postgres container")
	defer tc.Close(ctx)

	suite := wardenSuite(t, tc)
	require.Zero(t, suite.Run(), "access-control features failed")
}
