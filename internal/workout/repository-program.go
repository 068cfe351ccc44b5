package workout

import (
	"context"
	"fmt"
)

// programRepository persists the program under ProgramKey.
type programRepository struct {
	baseRepository
}

// Get returns the stored program, or the default program when none is stored or it is corrupt.
func (r *programRepository) Get(ctx context.Context) (Program, error) {
	program, found, err := loadDocument(ctx, r.baseRepository, ProgramKey, DefaultProgram)
	if err != nil {
		return nil, fmt.Errorf("load program: %w", err)
	}
	if found && program == nil {
		return Program{}, nil
	}
	return program, nil
}

// Set validates and stores program.
func (r *programRepository) Set(ctx context.Context, program Program) error {
	if err := program.Validate(); err != nil {
		return err
	}
	if program == nil {
		program = Program{}
	}
	for i := range program {
		if program[i].Exercises == nil {
			program[i].Exercises = []ExerciseDefinition{}
		}
	}
	if err := saveDocument(ctx, r.baseRepository, ProgramKey, program); err != nil {
		return fmt.Errorf("save program: %w", err)
	}
	return nil
}
