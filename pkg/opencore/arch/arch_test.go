//go:build linux

package arch

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForKnownArches(t *testing.T) {
	for _, name := range []string{"amd64", "386", "arm64", "arm", "riscv64"} {
		b, err := For(name)
		require.NoError(t, err, name)
		assert.NotZero(t, b.MachineID(), name)
		assert.Positive(t, b.PtRegsSize(), name)
		assert.Positive(t, b.PRStatusSize(), name)
	}
}

func TestForUnsupported(t *testing.T) {
	_, err := For("sparc64")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestEncodePRStatusEmbedsPid(t *testing.T) {
	b, err := For("amd64")
	require.NoError(t, err)

	regs := make([]byte, b.PtRegsSize())
	out := b.EncodePRStatus(PRStatusInput{Pid: 4100, PPid: 4096, Regs: regs})
	assert.Len(t, out, b.PRStatusSize())
	assert.Equal(t, uint32(4100), binary.LittleEndian.Uint32(out[32:36])) // pr_pid on x86_64
}

func TestMinidumpReachableAMD64(t *testing.T) {
	b, _ := For("amd64")
	regs := make([]byte, b.PtRegsSize())
	// place a value at register slot 16 (rip) within [0x1000,0x2000)
	regs[16*8] = 0x50
	regs[16*8+1] = 0x10
	assert.True(t, b.MinidumpReachable(regs, 0x1000, 0x2000))
	assert.False(t, b.MinidumpReachable(regs, 0x9000, 0xA000))
}

func TestArm64PACMaskFallbackNonZero(t *testing.T) {
	assert.NotZero(t, Arm64PACMaskFallback())
}
