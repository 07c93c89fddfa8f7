package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/gancho/internal/domain"
)

func TestPolicyRepository_ListEnabled_OrderedByPriorityThenID(t *testing.T) {
	repo := newTestDB(t).Policies()
	ctx := context.Background()

	p10 := newTestPolicy("mid", 10)
	p5 := newTestPolicy("first", 5)
	p20 := newTestPolicy("last", 20)

	disabled := newTestPolicy("off", 1)
	disabled.Enabled = false

	tieA := newTestPolicy("tie-a", 10)
	tieA.ID = "aaaa-tie"
	tieB := newTestPolicy("tie-b", 10)
	tieB.ID = "bbbb-tie"

	for _, p := range []domain.ApprovalPolicy{p10, p5, p20, disabled, tieB, tieA} {
		require.NoError(t, repo.Create(ctx, p))
	}

	policies, err := repo.ListEnabled(ctx)
	require.NoError(t, err)
	require.Len(t, policies, 5)

	assert.Equal(t, "first", policies[0].Name)
	assert.Equal(t, 20, policies[len(policies)-1].Priority)

	// Priorities never decrease, and equal priorities order by id
	for i := 1; i < len(policies); i++ {
		prev, cur := policies[i-1], policies[i]
		assert.LessOrEqual(t, prev.Priority, cur.Priority)
		if prev.Priority == cur.Priority {
			assert.Less(t, prev.ID, cur.ID)
		}
	}
}

func TestPolicyRepository_CreateAndGet(t *testing.T) {
	repo := newTestDB(t).Policies()
	ctx := context.Background()

	conditions := `[{"field":"branch","op":"eq","value":"main"}]`
	policy := newTestPolicy("guarded", 7)
	policy.Conditions = &conditions

	require.NoError(t, repo.Create(ctx, policy))

	got, err := repo.Get(ctx, policy.ID)
	require.NoError(t, err)
	assert.Equal(t, policy.Name, got.Name)
	require.NotNil(t, got.Conditions)
	assert.JSONEq(t, conditions, *got.Conditions)
}

func TestPolicyRepository_Create_KeepsZeroPriorityAndDisabled(t *testing.T) {
	repo := newTestDB(t).Policies()
	ctx := context.Background()

	policy := newTestPolicy("urgent", 0)
	policy.Enabled = false
	require.NoError(t, repo.Create(ctx, policy))

	got, err := repo.Get(ctx, policy.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Priority)
	assert.False(t, got.Enabled)
}

func TestPolicyRepository_Get_Missing(t *testing.T) {
	repo := newTestDB(t).Policies()

	_, err := repo.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrPolicyNotFound)
}

func TestPolicyRepository_Update_PersistsClearedConditions(t *testing.T) {
	repo := newTestDB(t).Policies()
	ctx := context.Background()

	conditions := `[{"field":"branch","op":"eq","value":"main"}]`
	policy := newTestPolicy("guarded", 7)
	policy.Conditions = &conditions
	require.NoError(t, repo.Create(ctx, policy))

	policy.Conditions = nil
	policy.Enabled = false
	require.NoError(t, repo.Update(ctx, policy))

	got, err := repo.Get(ctx, policy.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Conditions)
	assert.False(t, got.Enabled)
}

func TestPolicyRepository_Delete_Idempotent(t *testing.T) {
	repo := newTestDB(t).Policies()
	ctx := context.Background()

	policy := newTestPolicy("doomed", 1)
	require.NoError(t, repo.Create(ctx, policy))

	require.NoError(t, repo.Delete(ctx, policy.ID))
	assert.NoError(t, repo.Delete(ctx, policy.ID))
}
