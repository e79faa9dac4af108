package repository

import (
	"testing"
)

func TestBuildLikeConditionSQLite(t *testing.T) {
	condition, argCount := buildLikeConditionByDialect("sqlite", []string{"product_name", " ", "code"})
	if argCount != 2 {
		t.Fatalf("arg count want 2 got %d", argCount)
	}
	want := "(product_name LIKE ? OR code LIKE ?)"
	if condition != want {
		t.Fatalf("condition mismatch, want %s got %s", want, condition)
	}
}

func TestBuildLikeConditionPostgres(t *testing.T) {
	condition, argCount := buildLikeConditionByDialect("postgres", []string{"email"})
	if argCount != 1 {
		t.Fatalf("arg count want 1 got %d", argCount)
	}
	if condition != "(email ILIKE ?)" {
		t.Fatalf("postgres condition mismatch, got %s", condition)
	}
}

func TestBuildLikeConditionEmpty(t *testing.T) {
	condition, argCount := buildLikeCondition(nil)
	if condition != "" || argCount != 0 {
		t.Fatalf("expected empty condition, got %q (%d)", condition, argCount)
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs("%nike%", 3)
	if len(args) != 3 {
		t.Fatalf("args len want 3 got %d", len(args))
	}
	for idx, arg := range args {
		if arg != "%nike%" {
			t.Fatalf("args[%d] want %%nike%% got %v", idx, arg)
		}
	}
}
