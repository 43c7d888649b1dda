package services

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/moov-io/iso20022/pkg/common"
	"github.com/moov-io/iso20022/pkg/pacs_v08"
	"github.com/ruralpay/accounts/internal/models"
)

const pacs008MessageType = "pacs.008.001.08"

// SettlementMessage is what lands on the settlement queue.
type SettlementMessage struct {
	TransactionID string    `json:"transactionId"`
	MessageType   string    `json:"messageType"`
	QueuedAt      time.Time `json:"queuedAt"`
	XML           string    `json:"xml"`
}

// SettlementService turns recorded transfers into ISO 20022 credit transfers and queues them.
type SettlementService struct {
	redis    *redis.Client
	queue    string
	currency string
	bic      string
	now      func() time.Time
	newID    func() string
}

func NewSettlementService(rdb *redis.Client, queue, currency, bic string) *SettlementService {
	return &SettlementService{
		redis:    rdb,
		queue:    queue,
		currency: currency,
		bic:      bic,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Publish queues a pacs.008 for a transfer posting. Single-account postings are ignored.
func (s *SettlementService) Publish(ctx context.Context, tx *models.Transaction) error {
	if !tx.IsTransfer() {
		return nil
	}

	doc := s.CreatePacs008(tx)
	xmlData, err := ConvertToXML(doc)
	if err != nil {
		return err
	}

	data, err := json.Marshal(SettlementMessage{
		TransactionID: tx.TransactionID,
		MessageType:   pacs008MessageType,
		QueuedAt:      s.now(),
		XML:           xmlData,
	})
	if err != nil {
		return err
	}

	if err := s.redis.RPush(ctx, s.queue, data).Err(); err != nil {
		return fmt.Errorf("queue settlement for %s: %w", tx.TransactionID, err)
	}
	log.Printf("[SETTLEMENT] Transaction %s queued for settlement", tx.TransactionID)
	return nil
}

// CreatePacs008 builds a FIToFICustomerCreditTransfer for the money that left the paying account.
// For a withdrawal-style transfer the destination account pays.
func (s *SettlementService) CreatePacs008(tx *models.Transaction) *pacs_v08.FIToFICustomerCreditTransferV08 {
	debtor, creditor := tx.SourceAccountID, tx.DestinationAccountID
	if tx.Type == models.TransactionTypeWithdrawal {
		debtor, creditor = creditor, debtor
	}

	msgID := s.newID()
	creDtTm := s.now()
	settlementDate := tx.Date
	amount := tx.Amount.InexactFloat64()
	txID := common.Max35Text(tx.TransactionID)
	bic := common.BICFIDec2014Identifier(s.bic)

	return &pacs_v08.FIToFICustomerCreditTransferV08{
		GrpHdr: pacs_v08.GroupHeader93{
			MsgId:   common.Max35Text(msgID),
			CreDtTm: common.ISODateTime(creDtTm),
			NbOfTxs: "1",
			TtlIntrBkSttlmAmt: &pacs_v08.ActiveCurrencyAndAmount{
				Ccy:   common.ActiveCurrencyCode(s.currency),
				Value: amount,
			},
			IntrBkSttlmDt: (*common.ISODate)(&settlementDate),
			SttlmInf: pacs_v08.SettlementInstruction7{
				SttlmMtd: "INDA",
			},
		},
		CdtTrfTxInf: []pacs_v08.CreditTransferTransaction39{
			{
				PmtId: pacs_v08.PaymentIdentification7{
					InstrId:    &txID,
					EndToEndId: txID,
					TxId:       &txID,
				},
				IntrBkSttlmAmt: pacs_v08.ActiveCurrencyAndAmount{
					Ccy:   common.ActiveCurrencyCode(s.currency),
					Value: amount,
				},
				IntrBkSttlmDt: (*common.ISODate)(&settlementDate),
				ChrgBr:        "SLEV",
				DbtrAgt: pacs_v08.BranchAndFinancialInstitutionIdentification6{
					FinInstnId: pacs_v08.FinancialInstitutionIdentification18{BICFI: &bic},
				},
				Dbtr: pacs_v08.PartyIdentification135{
					Nm: &[]common.Max140Text{common.Max140Text(debtor)}[0],
				},
				CdtrAgt: pacs_v08.BranchAndFinancialInstitutionIdentification6{
					FinInstnId: pacs_v08.FinancialInstitutionIdentification18{BICFI: &bic},
				},
				Cdtr: pacs_v08.PartyIdentification135{
					Nm: &[]common.Max140Text{common.Max140Text(creditor)}[0],
				},
			},
		},
	}
}

// ConvertToXML renders an ISO 20022 document with the XML header.
func ConvertToXML(doc any) (string, error) {
	xmlData, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal XML: %w", err)
	}
	return xml.Header + string(xmlData), nil
}
