package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-bms/bmscore/internal/bmstime"
	"github.com/go-bms/bmscore/internal/lex"
)

func msgToken(track uint32, code, payload string) lex.TokenWithRange {
	ch, _ := lex.ParseChannel(code)
	return lex.TokenWithRange{Token: lex.Token{
		Kind: lex.TokenMessage, Track: bmstime.Track(track), Channel: ch, Message: payload,
	}}
}

// TestNestedRandom reproduces scenario S2 in spec.md §8 and
// original_source/tests/nested_random.rs.
func TestNestedRandom(t *testing.T) {
	res := lex.Lex(`
#00111:11000000

#RANDOM 2

  #IF 1
    #00112:00220000

    #RANDOM 2

      #IF 1
        #00115:00550000
      #ENDIF

      #IF 2
        #00116:00006600
      #ENDIF

    #ENDRANDOM

  #ENDIF

  #IF 2
    #00113:00003300
  #ENDIF

#ENDRANDOM

#00114:00000044`, lex.DefaultRelaxers())
	require.Empty(t, res.Warnings)

	live, warnings, errs := Filter(res.Tokens, StepRng{})
	require.Empty(t, warnings)
	require.Empty(t, errs)

	var payloads []string
	for _, twr := range live {
		if twr.Token.Kind == lex.TokenMessage {
			payloads = append(payloads, twr.Token.Message)
		}
	}
	assert.Equal(t, []string{"11000000", "00220000", "00550000", "00000044"}, payloads)
}

func TestElseBranchSelectedWhenNoIfMatches(t *testing.T) {
	res := lex.Lex(`
#RANDOM 2
  #IF 5
    #00111:11000000
  #ELSE
    #00112:22000000
  #ENDIF
#ENDRANDOM`, lex.DefaultRelaxers())

	live, _, _ := Filter(res.Tokens, StepRng{}) // StepRng always draws the low end: 1
	require.Len(t, live, 1)
	assert.Equal(t, "22000000", live[0].Token.Message)
}

func TestSecondElseIsRejected(t *testing.T) {
	res := lex.Lex(`
#RANDOM 2
  #IF 1
    #00111:11000000
  #ELSE
    #00112:22000000
  #ELSE
    #00113:33000000
  #ENDIF
#ENDRANDOM`, lex.DefaultRelaxers())

	live, warnings, _ := Filter(res.Tokens, StepRng{})
	require.Len(t, live, 1)
	assert.Equal(t, "11000000", live[0].Token.Message)
	require.Len(t, warnings, 1)
}

func TestUnclosedRandomWarnsAndClosesImplicitly(t *testing.T) {
	res := lex.Lex(`
#RANDOM 2
  #IF 1
    #00111:11000000
  #ENDIF`, lex.DefaultRelaxers())

	live, warnings, _ := Filter(res.Tokens, StepRng{})
	require.Len(t, live, 1)
	require.Len(t, warnings, 1)
}

func TestSwitchCaseFallthrough(t *testing.T) {
	res := lex.Lex(`
#SWITCH 2
  #CASE 1
    #00111:11000000
    #SKIP
  #CASE 2
    #00112:22000000
    #SKIP
#ENDRANDOM`, lex.DefaultRelaxers())

	live, _, _ := Filter(res.Tokens, StepRng{}) // draws 1
	require.Len(t, live, 1)
	assert.Equal(t, "11000000", live[0].Token.Message)
}
