package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SebasPM15/landing-personal/internal/contactform"
)

var fieldOrder = []string{
	contactform.FieldName,
	contactform.FieldEmail,
	contactform.FieldPhone,
	contactform.FieldMessage,
}

func newSubmitCmd(api func() LeadAPI) *cobra.Command {
	var fields contactform.Fields

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Validate and submit a lead through the intake service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := contactform.New(api())
			defer form.Close()
			form.Set(fields)

			confirmation, err := form.Submit(cmd.Context())
			var verr *contactform.ValidationError
			if errors.As(err, &verr) {
				for _, key := range fieldOrder {
					if msg, ok := verr.Fields[key]; ok {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", key, msg)
					}
				}
				return err
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), confirmation)
			return nil
		},
	}

	cmd.Flags().StringVar(&fields.Name, "name", "", "Visitor name")
	cmd.Flags().StringVar(&fields.Email, "email", "", "Visitor email")
	cmd.Flags().StringVar(&fields.Phone, "phone", "", "Visitor phone")
	cmd.Flags().StringVar(&fields.Message, "message", "", "Free-text message")
	return cmd
}
