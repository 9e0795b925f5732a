package services_test

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"math/big"
	"testing"

	"github.com/custodia/custodia-api/internal/mocks"
	"github.com/custodia/custodia-api/internal/services"
	"github.com/custodia/custodia-api/internal/store/memorystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testDepositor = common.HexToAddress("0xeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee")

// failingTransferer simulates a recipient that rejects incoming funds.
type failingTransferer struct{}

func (failingTransferer) Transfer(context.Context, common.Address, *big.Int) error {
	return errors.New("recipient rejected funds")
}

// flakyTransferer rejects the first n transfers, then settles normally.
type flakyTransferer struct {
	next     services.Transferer
	failures int
}

func (f *flakyTransferer) Transfer(ctx context.Context, recipient common.Address, amount *big.Int) error {
	if f.failures > 0 {
		f.failures--
		return errors.New("settlement temporarily unavailable")
	}
	return f.next.Transfer(ctx, recipient, amount)
}

type vaultFixture struct {
	vault     *services.VaultService
	auth      *services.AuthorizationService
	store     *memorystore.Store
	signerKey *ecdsa.PrivateKey
}

func newVaultFixture(t *testing.T) *vaultFixture {
	t.Helper()
	st := memorystore.New()
	auth, key := newAuthorizationService(t, st)

	vault, err := services.NewVaultService(st, auth, services.NewLedgerTransferer(st), services.NewLogPublisher(), testVault)
	require.NoError(t, err)

	return &vaultFixture{vault: vault, auth: auth, store: st, signerKey: key}
}

// sign issues an authorization for this fixture's vault on the test chain.
func (f *vaultFixture) sign(t *testing.T, recipient common.Address, amount *big.Int, authID common.Hash) []byte {
	t.Helper()
	return signAuthorization(t, f.signerKey, testVault, recipient, amount, authID, testChainID)
}

func TestNewVaultService_Validation(t *testing.T) {
	st := memorystore.New()
	auth, _ := newAuthorizationService(t, st)
	transferer := services.NewLedgerTransferer(st)
	events := services.NewLogPublisher()

	_, err := services.NewVaultService(st, nil, transferer, events, testVault)
	assert.Error(t, err)

	_, err = services.NewVaultService(st, auth, transferer, events, common.Address{})
	assert.Error(t, err)
}

func TestVaultService_Deposit(t *testing.T) {
	ctx := context.Background()
	f := newVaultFixture(t)

	tests := []struct {
		name    string
		from    common.Address
		amount  *big.Int
		wantErr error
	}{
		{name: "accepts a deposit", from: testDepositor, amount: big.NewInt(100)},
		{name: "rejects zero depositor", from: common.Address{}, amount: big.NewInt(100), wantErr: services.ErrInvalidDepositor},
		{name: "rejects zero amount", from: testDepositor, amount: big.NewInt(0), wantErr: services.ErrInvalidAmount},
		{name: "rejects nil amount", from: testDepositor, amount: nil, wantErr: services.ErrInvalidAmount},
		{name: "rejects negative amount", from: testDepositor, amount: big.NewInt(-5), wantErr: services.ErrInvalidAmount},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := f.vault.Deposit(ctx, tc.from, tc.amount)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestVaultService_DepositsAccumulate(t *testing.T) {
	ctx := context.Background()
	f := newVaultFixture(t)

	require.NoError(t, f.vault.Deposit(ctx, testDepositor, big.NewInt(100)))

	balance, err := f.vault.Balance(ctx)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(100), balance)

	require.NoError(t, f.vault.Deposit(ctx, testDepositor, big.NewInt(50)))
	require.NoError(t, f.vault.Deposit(ctx, testRecipient, big.NewInt(25)))

	balance, err = f.vault.Balance(ctx)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(175), balance)

	contribution, err := f.vault.Contribution(ctx, testDepositor)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(150), contribution)

	contribution, err = f.vault.Contribution(ctx, testRecipient)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(25), contribution)
}

func TestVaultService_WithdrawOnceThenReplayFails(t *testing.T) {
	ctx := context.Background()
	f := newVaultFixture(t)
	authID := common.HexToHash("0x01")
	amount := big.NewInt(40)

	require.NoError(t, f.vault.Deposit(ctx, testDepositor, big.NewInt(100)))

	sig := f.sign(t, testRecipient, amount, authID)
	params := services.WithdrawParams{Recipient: testRecipient, Amount: amount, AuthID: authID, Signature: sig}

	require.NoError(t, f.vault.Withdraw(ctx, params))

	balance, err := f.vault.Balance(ctx)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(60), balance)

	payout, err := f.store.Payout(ctx, testRecipient)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(40), payout)

	// The identical call fails with a replay error, balance untouched
	err = f.vault.Withdraw(ctx, params)
	assert.ErrorIs(t, err, services.ErrAuthorizationConsumed)

	balance, err = f.vault.Balance(ctx)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(60), balance)
}

func TestVaultService_WithdrawAmountMismatch(t *testing.T) {
	ctx := context.Background()
	f := newVaultFixture(t)
	authID := common.HexToHash("0x01")

	require.NoError(t, f.vault.Deposit(ctx, testDepositor, big.NewInt(100)))

	// Signature covers 40, the call asks for 41
	sig := f.sign(t, testRecipient, big.NewInt(40), authID)
	err := f.vault.Withdraw(ctx, services.WithdrawParams{
		Recipient: testRecipient,
		Amount:    big.NewInt(41),
		AuthID:    authID,
		Signature: sig,
	})
	assert.ErrorIs(t, err, services.ErrSignerMismatch)

	balance, err := f.vault.Balance(ctx)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(100), balance)

	consumed, err := f.auth.IsConsumed(ctx, authID)
	require.NoError(t, err)
	assert.False(t, consumed)
}

func TestVaultService_WithdrawStructuralValidation(t *testing.T) {
	ctx := context.Background()
	f := newVaultFixture(t)
	authID := common.HexToHash("0x01")

	require.NoError(t, f.vault.Deposit(ctx, testDepositor, big.NewInt(50)))

	tests := []struct {
		name    string
		params  services.WithdrawParams
		wantErr error
	}{
		{
			name:    "zero recipient",
			params:  services.WithdrawParams{Recipient: common.Address{}, Amount: big.NewInt(10), AuthID: authID},
			wantErr: services.ErrInvalidRecipient,
		},
		{
			name:    "zero amount",
			params:  services.WithdrawParams{Recipient: testRecipient, Amount: big.NewInt(0), AuthID: authID},
			wantErr: services.ErrInvalidAmount,
		},
		{
			name:    "nil amount",
			params:  services.WithdrawParams{Recipient: testRecipient, AuthID: authID},
			wantErr: services.ErrInvalidAmount,
		},
		{
			name:    "amount exceeds balance",
			params:  services.WithdrawParams{Recipient: testRecipient, Amount: big.NewInt(51), AuthID: authID},
			wantErr: services.ErrInsufficientBalance,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := f.vault.Withdraw(ctx, tc.params)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	// Structural rejections never touched the authorization
	consumed, err := f.auth.IsConsumed(ctx, authID)
	require.NoError(t, err)
	assert.False(t, consumed)
}

func TestVaultService_OversizedRequestLeavesAuthorizationReusable(t *testing.T) {
	ctx := context.Background()
	f := newVaultFixture(t)
	authID := common.HexToHash("0x01")
	amount := big.NewInt(40)

	require.NoError(t, f.vault.Deposit(ctx, testDepositor, big.NewInt(30)))

	sig := f.sign(t, testRecipient, amount, authID)
	params := services.WithdrawParams{Recipient: testRecipient, Amount: amount, AuthID: authID, Signature: sig}

	// Fails on balance, before authorization is even checked
	err := f.vault.Withdraw(ctx, params)
	assert.ErrorIs(t, err, services.ErrInsufficientBalance)

	consumed, err := f.auth.IsConsumed(ctx, authID)
	require.NoError(t, err)
	require.False(t, consumed)

	// Topping up makes the very same authorization usable
	require.NoError(t, f.vault.Deposit(ctx, testDepositor, big.NewInt(20)))
	require.NoError(t, f.vault.Withdraw(ctx, params))

	balance, err := f.vault.Balance(ctx)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(10), balance)
}

func TestVaultService_TransferFailureStrandsAuthorization(t *testing.T) {
	ctx := context.Background()
	st := memorystore.New()
	auth, key := newAuthorizationService(t, st)

	vault, err := services.NewVaultService(st, auth, failingTransferer{}, services.NewLogPublisher(), testVault)
	require.NoError(t, err)

	authID := common.HexToHash("0x01")
	amount := big.NewInt(40)
	require.NoError(t, vault.Deposit(ctx, testDepositor, big.NewInt(100)))

	sig := signAuthorization(t, key, testVault, testRecipient, amount, authID, testChainID)
	err = vault.Withdraw(ctx, services.WithdrawParams{
		Recipient: testRecipient,
		Amount:    amount,
		AuthID:    authID,
		Signature: sig,
	})
	assert.ErrorIs(t, err, services.ErrTransferFailed)

	// The authorization was consumed before the transfer ran; it is burned
	// and the caller needs a fresh one.
	consumed, err := auth.IsConsumed(ctx, authID)
	require.NoError(t, err)
	assert.True(t, consumed)

	err = vault.Withdraw(ctx, services.WithdrawParams{
		Recipient: testRecipient,
		Amount:    amount,
		AuthID:    authID,
		Signature: sig,
	})
	assert.ErrorIs(t, err, services.ErrAuthorizationConsumed)

	// The funds never left the pool: balance intact, nothing paid out
	balance, err := vault.Balance(ctx)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(100), balance)

	payout, err := st.Payout(ctx, testRecipient)
	require.NoError(t, err)
	assert.Equal(t, 0, payout.Sign())
}

func TestVaultService_FreshAuthorizationRetriesFailedTransfer(t *testing.T) {
	ctx := context.Background()
	st := memorystore.New()
	auth, key := newAuthorizationService(t, st)

	transferer := &flakyTransferer{next: services.NewLedgerTransferer(st), failures: 1}
	vault, err := services.NewVaultService(st, auth, transferer, services.NewLogPublisher(), testVault)
	require.NoError(t, err)

	amount := big.NewInt(40)
	require.NoError(t, vault.Deposit(ctx, testDepositor, big.NewInt(100)))

	firstAuthID := common.HexToHash("0x01")
	sig := signAuthorization(t, key, testVault, testRecipient, amount, firstAuthID, testChainID)
	err = vault.Withdraw(ctx, services.WithdrawParams{
		Recipient: testRecipient,
		Amount:    amount,
		AuthID:    firstAuthID,
		Signature: sig,
	})
	require.ErrorIs(t, err, services.ErrTransferFailed)

	// The failed attempt burned its authorization but not the funds; a
	// fresh authorization withdraws the same amount.
	secondAuthID := common.HexToHash("0x02")
	sig = signAuthorization(t, key, testVault, testRecipient, amount, secondAuthID, testChainID)
	require.NoError(t, vault.Withdraw(ctx, services.WithdrawParams{
		Recipient: testRecipient,
		Amount:    amount,
		AuthID:    secondAuthID,
		Signature: sig,
	}))

	// One effective withdrawal of 40 from 100: balance 60, payout 40
	balance, err := vault.Balance(ctx)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(60), balance)

	payout, err := st.Payout(ctx, testRecipient)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(40), payout)
}

func TestVaultService_StoreFailurePropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	storeErr := errors.New("connection reset")

	mockStore := mocks.NewMockStore(ctrl)
	auth, _ := newAuthorizationService(t, memorystore.New())

	vault, err := services.NewVaultService(mockStore, auth, services.NewLedgerTransferer(mockStore), services.NewLogPublisher(), testVault)
	require.NoError(t, err)

	mockStore.EXPECT().Balance(ctx).Return(nil, storeErr)

	err = vault.Withdraw(ctx, services.WithdrawParams{
		Recipient: testRecipient,
		Amount:    big.NewInt(10),
		AuthID:    common.HexToHash("0x01"),
	})
	assert.ErrorIs(t, err, storeErr)
}

func TestVaultService_NoPrivilegedWithdrawalPath(t *testing.T) {
	ctx := context.Background()
	f := newVaultFixture(t)
	authID := common.HexToHash("0x01")
	amount := big.NewInt(40)

	require.NoError(t, f.vault.Deposit(ctx, testDepositor, big.NewInt(100)))

	// Even the controller cannot withdraw without a signed authorization
	controllerKey, err := crypto.GenerateKey()
	require.NoError(t, err)
	sig := signAuthorization(t, controllerKey, testVault, testController, amount, authID, testChainID)

	err = f.vault.Withdraw(ctx, services.WithdrawParams{
		Recipient: testController,
		Amount:    amount,
		AuthID:    authID,
		Signature: sig,
	})
	assert.ErrorIs(t, err, services.ErrSignerMismatch)
}
