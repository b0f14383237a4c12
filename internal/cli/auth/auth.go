package auth

import (
	"errors"
	"fmt"

	"github.com/julianstephens/daybook/internal/cli"
	dberrors "github.com/julianstephens/daybook/internal/errors"
	"github.com/julianstephens/daybook/internal/security"
)

var errPinMismatch = errors.New("PINs do not match")

// askNewPin prompts twice for a PIN unless one was passed as a flag.
func askNewPin(ctx *cli.Context, pin string) (string, error) {
	if pin != "" {
		return pin, nil
	}
	first, err := ctx.Prompter.Secret("New PIN")
	if err != nil {
		return "", err
	}
	second, err := ctx.Prompter.Secret("Repeat PIN")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errPinMismatch
	}
	return first, nil
}

func orPrompt(ctx *cli.Context, value, title string) (string, error) {
	if value != "" {
		return value, nil
	}
	return ctx.Prompter.Input(title)
}

type SetupCmd struct {
	Username   string `help:"Name shown on exports."`
	PIN        string `name:"pin" help:"New PIN. Prompted for when omitted."`
	CurrentPIN string `name:"current-pin" help:"Existing PIN, required to replace an account."`
	Question   string `help:"Recovery question, e.g. the name of your first school."`
	Answer     string `help:"Answer to the recovery question."`
	NoRecovery bool   `help:"Skip setting a recovery question."`
}

func (c *SetupCmd) Run(ctx *cli.Context) error {
	ready, err := ctx.Gate.IsSetupComplete()
	if err != nil {
		return err
	}
	if ready {
		if err := ctx.Unlock(c.CurrentPIN); err != nil {
			return fmt.Errorf("the current PIN is required to replace the account: %w", err)
		}
	}

	username, err := orPrompt(ctx, c.Username, "Username")
	if err != nil {
		return err
	}
	pin, err := askNewPin(ctx, c.PIN)
	if err != nil {
		return err
	}

	var question, answer string
	if !c.NoRecovery {
		if question, err = orPrompt(ctx, c.Question, "Recovery question"); err != nil {
			return err
		}
		if answer, err = orPrompt(ctx, c.Answer, "Recovery answer"); err != nil {
			return err
		}
	}

	if err := ctx.Gate.SetupAccount(username, pin, question, answer); err != nil {
		return fmt.Errorf("failed to set up account: %w", err)
	}
	ctx.Printf("✓ Account set up for %s\n", ctx.Gate.Username())
	if question == "" {
		ctx.Println("  No recovery question: a forgotten PIN cannot be reset.")
	}
	return nil
}

type UnlockCmd struct {
	PIN string `name:"pin" help:"PIN. Prompted for when omitted." env:"DAYBOOK_PIN"`
}

// Run checks the PIN. Each command unlocks for its own invocation only.
func (c *UnlockCmd) Run(ctx *cli.Context) error {
	ready, err := ctx.Gate.IsSetupComplete()
	if err != nil {
		return err
	}
	if !ready {
		return dberrors.WithHint(security.ErrNotSetup, "run 'daybook setup' to protect the journal")
	}
	if err := ctx.Unlock(c.PIN); err != nil {
		return err
	}
	ctx.Printf("✓ PIN accepted for %s\n", ctx.Gate.Username())
	return nil
}

type RecoverCmd struct {
	Answer string `help:"Answer to the recovery question. Prompted for when omitted."`
	NewPIN string `name:"new-pin" help:"Replacement PIN. Prompted for when omitted."`
}

func (c *RecoverCmd) Run(ctx *cli.Context) error {
	question, err := ctx.Gate.RecoveryQuestion()
	if err != nil {
		return err
	}

	answer := c.Answer
	if answer == "" {
		if answer, err = ctx.Prompter.Secret(question); err != nil {
			return err
		}
	}
	ok, err := ctx.Gate.VerifyRecoveryAnswer(answer)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("recovery answer does not match")
	}

	pin, err := askNewPin(ctx, c.NewPIN)
	if err != nil {
		return err
	}
	if err := ctx.Gate.ResetPin(pin); err != nil {
		return fmt.Errorf("failed to reset PIN: %w", err)
	}
	ctx.Println("✓ PIN reset")
	return nil
}
