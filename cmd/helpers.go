package cmd

import (
	"fmt"

	"github.com/mj1618/sikuli-cli/internal/output"
	"github.com/mj1618/sikuli-cli/internal/platform"
	"github.com/mj1618/sikuli-cli/internal/sikuli"
	"github.com/mj1618/sikuli-cli/internal/steps"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// openSession builds the provider for the loaded config and starts a
// Session on it. The caller closes the Session.
func openSession() (*sikuli.Session, *platform.Provider, error) {
	provider, err := platform.NewProvider(appCfg, logger)
	if err != nil {
		return nil, nil, err
	}
	session, err := provider.OpenSession()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start interpreter: %w", err)
	}
	return session, provider, nil
}

// closeSession stops the interpreter, logging rather than failing.
func closeSession(session *sikuli.Session) {
	if err := session.Close(); err != nil {
		logger.Warn("close session", zap.Error(err))
	}
}

// runStep opens a session, executes one step, prints the result, and
// returns the step error so the exit code reflects it.
func runStep(action string, params map[string]interface{}) error {
	session, _, err := openSession()
	if err != nil {
		return err
	}
	defer closeSession(session)

	result, err := steps.Execute(session, action, params)
	result.OK = err == nil
	if err != nil {
		result.Error = err.Error()
	}
	if perr := output.Print(result); perr != nil {
		return perr
	}
	return err
}

// addTargetFlags adds image and region targeting flags. prefix namespaces
// them, e.g. "from-" gives --from-image.
func addTargetFlags(cmd *cobra.Command, prefix string) {
	cmd.Flags().String(prefix+"image", "", "Image file to search for")
	cmd.Flags().Float64(prefix+"similar", sikuli.DefaultSimilarity, "Minimum similarity 0-1")
	cmd.Flags().String(prefix+"offset", "", "Target offset from the match center as dx,dy")
	addRegionFlags(cmd, prefix)
}

// addRegionFlags adds the region-only targeting flags.
func addRegionFlags(cmd *cobra.Command, prefix string) {
	cmd.Flags().String(prefix+"region", "", "Screen rectangle as x,y,w,h")
	cmd.Flags().Int(prefix+"screen", 0, "Monitor index")
	cmd.Flags().Bool(prefix+"focused-window", false, "Use the focused application window")
}

// targetParams converts targeting flags to step params. Unset flags are
// left out so the step defaults apply.
func targetParams(cmd *cobra.Command, prefix string) map[string]interface{} {
	params := map[string]interface{}{}
	for _, name := range []string{"image", "offset", "region"} {
		if v, _ := cmd.Flags().GetString(prefix + name); v != "" {
			params[name] = v
		}
	}
	if f := cmd.Flags().Lookup(prefix + "similar"); f != nil && f.Changed {
		params["similar"], _ = cmd.Flags().GetFloat64(prefix + "similar")
	}
	if f := cmd.Flags().Lookup(prefix + "screen"); f != nil && f.Changed {
		params["screen"], _ = cmd.Flags().GetInt(prefix + "screen")
	}
	if v, _ := cmd.Flags().GetBool(prefix + "focused-window"); v {
		params["focused-window"] = true
	}
	return params
}
