package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/denshoproject/namesdb-editor/internal/domain/entities"
)

func newFieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fields [model]",
		Short: "List the fields of a record model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var names []string
			switch entities.Kind(args[0]) {
			case entities.KindPerson:
				names = entities.FieldNames(&entities.Person{})
			case entities.KindFarRecord:
				names = entities.FieldNames(&entities.FarRecord{})
			case entities.KindWraRecord:
				names = entities.FieldNames(&entities.WraRecord{})
			case entities.KindIreiRecord:
				names = entities.FieldNames(&entities.IreiRecord{})
			case entities.KindFacility:
				names = []string{"facility_id", "facility_type", "facility_name"}
			case entities.KindPersonFacility:
				names = []string{"person_id", "facility_id", "entry_date", "exit_date"}
			default:
				return fmt.Errorf("unknown record kind %q (one of: %v)", args[0], entities.Kinds)
			}

			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}
}
