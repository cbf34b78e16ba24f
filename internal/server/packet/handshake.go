package packet

import (
	tnet "github.com/OCharnyshevich/terraria-server/internal/server/net"
)

// VersionIdentifier is the first message a client sends, e.g. "Terraria279".
type VersionIdentifier struct {
	Version string
}

func (*VersionIdentifier) Opcode() Opcode { return OpVersionIdentifier }

func decodeVersionIdentifier(r *tnet.Reader) (*VersionIdentifier, error) {
	s, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	return &VersionIdentifier{Version: s}, nil
}

func encodeVersionIdentifier(w *tnet.Writer, m *VersionIdentifier) {
	w.WriteString(m.Version)
}

// ConnectionRefuse tells the client why it is being disconnected.
type ConnectionRefuse struct {
	Reason tnet.Text
}

func (*ConnectionRefuse) Opcode() Opcode { return OpConnectionRefuse }

func decodeConnectionRefuse(r *tnet.Reader) (*ConnectionRefuse, error) {
	t, err := r.ReadText()
	if err != nil {
		return nil, err
	}
	return &ConnectionRefuse{Reason: t}, nil
}

func encodeConnectionRefuse(w *tnet.Writer, m *ConnectionRefuse) {
	w.WriteText(m.Reason)
}

type ConnectionApprove struct {
	ClientID uint8
	// Flag is the "run check bytes in client loop thread" switch; always false.
	Flag bool
}

func (*ConnectionApprove) Opcode() Opcode { return OpConnectionApprove }

func decodeConnectionApprove(r *tnet.Reader) (*ConnectionApprove, error) {
	var m ConnectionApprove
	var err error
	if m.ClientID, err = r.ReadU8(); err != nil {
		return nil, err
	}
	if m.Flag, err = r.ReadBool(); err != nil {
		return nil, err
	}
	return &m, nil
}

func encodeConnectionApprove(w *tnet.Writer, m *ConnectionApprove) {
	w.WriteU8(m.ClientID)
	w.WriteBool(m.Flag)
}

type PasswordRequest struct{}

func (*PasswordRequest) Opcode() Opcode { return OpPasswordRequest }

type PasswordResponse struct {
	Password string
}

func (*PasswordResponse) Opcode() Opcode { return OpPasswordResponse }

func decodePasswordResponse(r *tnet.Reader) (*PasswordResponse, error) {
	s, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	return &PasswordResponse{Password: s}, nil
}

func encodePasswordResponse(w *tnet.Writer, m *PasswordResponse) {
	w.WriteString(m.Password)
}

// Refusal reason keys sent as localization keys.
const (
	ReasonVersionMismatch = "LegacyMultiplayer.4"
	ReasonBadPassword     = "LegacyMultiplayer.1"
	ReasonNameTaken       = "LegacyMultiplayer.5"
	ReasonNameTooLong     = "Net.NameTooLong"
	ReasonEmptyName       = "Net.EmptyName"
	ReasonServerFull      = "CLI.ServerIsFull"
)

// Refuse builds a ConnectionRefuse for a localization key.
func Refuse(key string, subs ...tnet.Text) *ConnectionRefuse {
	return &ConnectionRefuse{Reason: tnet.Key(key, subs...)}
}
