package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "quadra", cmd.Use)
	assert.Contains(t, cmd.Long, "composite")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"integrate", "eval", "converge", "list", "test", "validate"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	catalogFlag := cmd.PersistentFlags().Lookup("catalog")
	require.NotNil(t, catalogFlag)
	assert.Equal(t, "", catalogFlag.DefValue)

	langFlag := cmd.PersistentFlags().Lookup("lang")
	require.NotNil(t, langFlag)
	assert.Equal(t, "en", langFlag.DefValue)
}

func TestIntegrateCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	integrateCmd, _, err := cmd.Find([]string{"integrate"})
	require.NoError(t, err)

	nFlag := integrateCmd.Flags().Lookup("partitions")
	require.NotNil(t, nFlag)
	assert.Equal(t, "n", nFlag.Shorthand)

	assert.Equal(t, "reference", integrateCmd.Flags().Lookup("integrand").DefValue)
	assert.Equal(t, "1", integrateCmd.Flags().Lookup("lower").DefValue)
	assert.Equal(t, "10", integrateCmd.Flags().Lookup("upper").DefValue)
}

func TestConvergeCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	convergeCmd, _, err := cmd.Find([]string{"converge"})
	require.NoError(t, err)

	assert.Equal(t, "10", convergeCmd.Flags().Lookup("start").DefValue)
	assert.Equal(t, "4", convergeCmd.Flags().Lookup("levels").DefValue)
}

func TestTestCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	testCmd, _, err := cmd.Find([]string{"test"})
	require.NoError(t, err)

	updateFlag := testCmd.Flags().Lookup("update")
	require.NotNil(t, updateFlag)
	assert.Equal(t, "false", updateFlag.DefValue)

	filterFlag := testCmd.Flags().Lookup("filter")
	require.NotNil(t, filterFlag)
}

func TestRootCommand_InvalidFormat(t *testing.T) {
	_, _, err := execute(t, "list", "--format", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "yaml"`)
}

func TestRootCommand_InvalidLang(t *testing.T) {
	_, _, err := execute(t, "list", "--lang", "not a tag!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid language")
}
