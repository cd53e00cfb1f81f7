package wallet

import (
	"errors"
	"fmt"

	"github.com/R3E-Network/NeoRust-sub001/pkg/config/netmode"
	"github.com/R3E-Network/NeoRust-sub001/pkg/core/transaction"
	"github.com/R3E-Network/NeoRust-sub001/pkg/crypto/hash"
	"github.com/R3E-Network/NeoRust-sub001/pkg/crypto/keys"
	"github.com/R3E-Network/NeoRust-sub001/pkg/encoding/address"
	"github.com/R3E-Network/NeoRust-sub001/pkg/smartcontract"
	"github.com/R3E-Network/NeoRust-sub001/pkg/util"
	"github.com/R3E-Network/NeoRust-sub001/pkg/vm/opcode"
)

// Account represents a NEO account. It holds the private and the public key
// along with some metadata.
type Account struct {
	// NEO private key.
	privateKey *keys.PrivateKey

	// Cached scriptHash, valid while the contract stays unchanged.
	scriptHash util.Uint160

	// NEO public address.
	Address string `json:"address"`

	// Label is a label the user had made for this account.
	Label string `json:"label"`

	// Contract is a Contract object which describes the details of the contract.
	// This field can be null (for watch-only address).
	Contract *Contract `json:"contract"`

	// Indicates whether the account is locked by the user.
	// The client shouldn't spend the funds in a locked account.
	Locked bool `json:"lock"`
}

// Contract represents a subset of the smartcontract to embed in the
// Account so it's NEP-6 compliant.
type Contract struct {
	// Script of the contract deployed on the blockchain.
	Script []byte `json:"script"`

	// A list of parameters used deploying this contract.
	Parameters []ContractParam `json:"parameters"`

	// Indicates whether the contract has been deployed to the blockchain.
	Deployed bool `json:"deployed"`
}

// ContractParam is a descriptor of a contract parameter
// containing its name and type.
type ContractParam struct {
	Name string                  `json:"name"`
	Type smartcontract.ParamType `json:"type"`
}

// ScriptHash returns the hash of contract's script.
func (c Contract) ScriptHash() util.Uint160 {
	return hash.Hash160(c.Script)
}

// NewAccount creates a new Account with a random generated PrivateKey.
func NewAccount() (*Account, error) {
	priv, err := keys.NewPrivateKey()
	if err != nil {
		return nil, err
	}
	return NewAccountFromPrivateKey(priv), nil
}

// NewAccountFromWIF creates a new Account from the given WIF.
func NewAccountFromWIF(wif string) (*Account, error) {
	privKey, err := keys.NewPrivateKeyFromWIF(wif)
	if err != nil {
		return nil, err
	}
	return NewAccountFromPrivateKey(privKey), nil
}

// NewAccountFromPrivateKey creates a wallet from the given PrivateKey.
func NewAccountFromPrivateKey(p *keys.PrivateKey) *Account {
	pubKey := p.PublicKey()

	a := &Account{
		privateKey: p,
		Address:    p.Address(),
		Contract: &Contract{
			Script:     pubKey.GetVerificationScript(),
			Parameters: getContractParams(1),
		},
	}

	return a
}

// NewContractAccount creates a watch-only Account for the given verification
// script with the specified number of signature parameters.
func NewContractAccount(script []byte, nsigs int) *Account {
	return &Account{
		Address: address.Uint160ToString(hash.Hash160(script)),
		Contract: &Contract{
			Script:     script,
			Parameters: getContractParams(nsigs),
		},
	}
}

// PrivateKey returns private key corresponding to the account.
func (a *Account) PrivateKey() *keys.PrivateKey {
	return a.privateKey
}

// PublicKey returns the public key of the account. For watch-only accounts
// it's recovered from the verification script when it's a standard signature
// contract, otherwise nil is returned.
func (a *Account) PublicKey() *keys.PublicKey {
	if a.privateKey != nil {
		return a.privateKey.PublicKey()
	}
	if a.Contract != nil {
		if keyBytes, ok := smartcontract.ParseSignatureContract(a.Contract.Script); ok {
			pub, err := keys.NewPublicKeyFromBytes(keyBytes)
			if err == nil {
				return pub
			}
		}
	}
	return nil
}

// ScriptHash returns the script hash (account) of the Account. The first
// computed value is cached, verification scripts are immutable once the
// contract is set.
func (a *Account) ScriptHash() util.Uint160 {
	if a.scriptHash.Equals(util.Uint160{}) {
		if a.Contract != nil {
			a.scriptHash = a.Contract.ScriptHash()
		} else if u, err := address.StringToUint160(a.Address); err == nil {
			a.scriptHash = u
		}
	}
	return a.scriptHash
}

// GetVerificationScript returns the account's verification script.
func (a *Account) GetVerificationScript() []byte {
	if a.Contract != nil {
		return a.Contract.Script
	}
	return nil
}

// CanSign returns true when account is not locked and has a decrypted private
// key inside, so it's ready to create real signatures.
func (a *Account) CanSign() bool {
	return !a.Locked && a.privateKey != nil
}

// SignHashable signs the given Hashable item for the given network and
// returns the signature. The account must be unlocked and hold a private key.
func (a *Account) SignHashable(net netmode.Magic, item hash.Hashable) ([]byte, error) {
	if !a.CanSign() {
		return nil, errors.New("account can not sign")
	}
	return a.privateKey.SignHashable(uint32(net), item), nil
}

// SignTx signs the transaction on behalf of the account adding (or extending)
// a witness at the position matching the account's signer. Transaction
// witnesses are filled in the signer order, so the previous signers must have
// their witnesses in place.
func (a *Account) SignTx(net netmode.Magic, t *transaction.Transaction) error {
	var pos = -1

	if a.Locked {
		return errors.New("account is locked")
	}
	if a.Contract == nil {
		return errors.New("account has no contract")
	}
	accHash := a.Contract.ScriptHash()
	for i := range t.Signers {
		if t.Signers[i].Account.Equals(accHash) {
			pos = i
			break
		}
	}
	if pos == -1 {
		return errors.New("transaction is not signed by this account")
	}
	if len(t.Scripts) < pos {
		return errors.New("transaction is not yet signed by the previous signer")
	}
	if len(t.Scripts) == pos {
		t.Scripts = append(t.Scripts, transaction.Witness{
			VerificationScript: a.Contract.Script,
		})
	}
	if len(a.Contract.Parameters) == 0 {
		return nil
	}
	if a.privateKey == nil {
		return errors.New("account key is not available")
	}
	sign := a.privateKey.SignHashable(uint32(net), t)

	invoc := append(t.Scripts[pos].InvocationScript, byte(opcode.PUSHDATA1), keys.SignatureLen)
	t.Scripts[pos].InvocationScript = append(invoc, sign...)
	return nil
}

// ConvertMultisig sets a's contract to an m out of len(pubs) multisig contract.
// The account's key must be present among the given public keys.
func (a *Account) ConvertMultisig(m int, pubs []*keys.PublicKey) error {
	if a.privateKey == nil {
		return errors.New("account key is not available")
	}
	accKey := a.privateKey.PublicKey()

	var found bool
	for i := range pubs {
		if accKey.Equal(pubs[i]) {
			found = true
			break
		}
	}
	if !found {
		return errors.New("own public key was not found among multisig keys")
	}

	script, err := smartcontract.CreateMultiSigRedeemScript(m, pubs)
	if err != nil {
		return err
	}
	a.scriptHash = hash.Hash160(script)
	a.Address = address.Uint160ToString(a.scriptHash)
	a.Contract = &Contract{
		Script:     script,
		Parameters: getContractParams(m),
	}

	return nil
}

// Close wipes the account's sensitive data.
func (a *Account) Close() {
	if a.privateKey == nil {
		return
	}
	a.privateKey.Destroy()
	a.privateKey = nil
}

func getContractParams(n int) []ContractParam {
	params := make([]ContractParam, n)
	for i := range params {
		params[i].Name = fmt.Sprintf("parameter%d", i)
		params[i].Type = smartcontract.SignatureType
	}

	return params
}
