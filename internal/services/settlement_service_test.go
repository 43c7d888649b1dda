package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/ruralpay/accounts/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSettlement(t *testing.T) (*SettlementService, redismock.ClientMock) {
	t.Helper()
	redisClient, mock := redismock.NewClientMock()
	service := NewSettlementService(redisClient, "settlement_queue", "PEN", "BANKPEPL")
	service.now = func() time.Time { return testClock }
	service.newID = func() string { return "msg-0001" }
	return service, mock
}

func postedTransfer(txType models.TransactionType) *models.Transaction {
	tx := transfer(txType, "src", "dst", "150.75")
	tx.TransactionID = "tx-42"
	tx.Date = testClock
	return &tx
}

func TestSettlementService_CreatePacs008(t *testing.T) {
	service, _ := newTestSettlement(t)

	t.Run("deposit transfer is paid by the source", func(t *testing.T) {
		doc := service.CreatePacs008(postedTransfer(models.TransactionTypeDeposit))

		assert.Equal(t, "msg-0001", string(doc.GrpHdr.MsgId))
		assert.Equal(t, "1", string(doc.GrpHdr.NbOfTxs))
		assert.Equal(t, "PEN", string(doc.GrpHdr.TtlIntrBkSttlmAmt.Ccy))
		assert.Equal(t, 150.75, doc.GrpHdr.TtlIntrBkSttlmAmt.Value)
		require.Len(t, doc.CdtTrfTxInf, 1)

		info := doc.CdtTrfTxInf[0]
		assert.Equal(t, "tx-42", string(info.PmtId.EndToEndId))
		assert.Equal(t, "src", string(*info.Dbtr.Nm))
		assert.Equal(t, "dst", string(*info.Cdtr.Nm))
		assert.Equal(t, "BANKPEPL", string(*info.DbtrAgt.FinInstnId.BICFI))
	})

	t.Run("withdrawal transfer is paid by the destination", func(t *testing.T) {
		doc := service.CreatePacs008(postedTransfer(models.TransactionTypeWithdrawal))

		info := doc.CdtTrfTxInf[0]
		assert.Equal(t, "dst", string(*info.Dbtr.Nm))
		assert.Equal(t, "src", string(*info.Cdtr.Nm))
	})

	t.Run("renders as XML", func(t *testing.T) {
		xmlData, err := ConvertToXML(service.CreatePacs008(postedTransfer(models.TransactionTypeDeposit)))
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(xmlData, "<?xml"))
		assert.Contains(t, xmlData, "tx-42")
		assert.Contains(t, xmlData, "BANKPEPL")
	})
}

func TestSettlementService_Publish(t *testing.T) {
	ctx := context.Background()

	expectedMessage := func(t *testing.T, service *SettlementService, tx *models.Transaction) []byte {
		xmlData, err := ConvertToXML(service.CreatePacs008(tx))
		require.NoError(t, err)
		data, err := json.Marshal(SettlementMessage{
			TransactionID: tx.TransactionID,
			MessageType:   "pacs.008.001.08",
			QueuedAt:      testClock,
			XML:           xmlData,
		})
		require.NoError(t, err)
		return data
	}

	t.Run("queues transfers", func(t *testing.T) {
		service, mock := newTestSettlement(t)
		tx := postedTransfer(models.TransactionTypeDeposit)

		mock.ExpectRPush("settlement_queue", expectedMessage(t, service, tx)).SetVal(1)

		require.NoError(t, service.Publish(ctx, tx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ignores single-account postings", func(t *testing.T) {
		service, mock := newTestSettlement(t)
		tx := deposit("acc-1", "10")

		require.NoError(t, service.Publish(ctx, &tx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("queue failure is returned", func(t *testing.T) {
		service, mock := newTestSettlement(t)
		tx := postedTransfer(models.TransactionTypeDeposit)

		mock.ExpectRPush("settlement_queue", expectedMessage(t, service, tx)).SetErr(errors.New("redis down"))

		err := service.Publish(ctx, tx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "tx-42")
	})
}

type recordingPublisher struct {
	published []string
	err       error
}

func (p *recordingPublisher) Publish(_ context.Context, tx *models.Transaction) error {
	p.published = append(p.published, tx.TransactionID)
	return p.err
}

func TestPostingService_PublishesTransfers(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	publisher := &recordingPublisher{err: errors.New("queue unavailable")}
	env.engine.settlement = publisher
	env.createAccount(t, checkingAccount("a", "1000"))
	env.createAccount(t, checkingAccount("b", "1000"))

	_, err := env.engine.Post(ctx, deposit("a", "10"))
	require.NoError(t, err)
	assert.Empty(t, publisher.published)

	// A settlement failure does not undo or fail the posting.
	posted, err := env.engine.Post(ctx, transfer(models.TransactionTypeDeposit, "a", "b", "10"))
	require.NoError(t, err)
	assert.Equal(t, []string{posted.TransactionID}, publisher.published)
	env.assertBalance(t, "b", "1010")
}
