package sharecode_test

import (
	"net/url"
	"testing"

	"github.com/rpggio/fcea/internal/domain/contract"
	"github.com/rpggio/fcea/internal/domain/vesting"
	"github.com/rpggio/fcea/internal/sharecode"
	"github.com/stretchr/testify/require"
)

func TestEncode_DefaultsProduceEmptyQuery(t *testing.T) {
	require.Empty(t, sharecode.Encode(contract.DefaultFounder(), contract.DefaultContributor()))
}

func TestEncode_OnlyNonDefaultKeys(t *testing.T) {
	founder := contract.DefaultFounder()
	founder.Name = "Ada Lovelace"
	contributor := contract.DefaultContributor()
	contributor.CliffDays = 90
	contributor.DeferredWageRate = 150

	values, err := url.ParseQuery(sharecode.Encode(founder, contributor))
	require.NoError(t, err)
	require.Equal(t, url.Values{
		"founderName": {"Ada Lovelace"},
		"cliffDays":   {"90"},
	}, values)
}

func TestDecode_RoundTrip(t *testing.T) {
	founder := contract.DefaultFounder()
	founder.Name = "Ada Lovelace"
	founder.Email = "ada@engine.example"
	founder.Phone = "+44 20 7946 0000"
	founder.Address = "12 St James's Square, London"
	founder.CompanyName = "Analytical Engines & Co"
	founder.DeferredWageRate = 87.5

	contributor := contract.DefaultContributor()
	contributor.Name = "Grace Hopper"
	contributor.Email = "grace@cobol.example"
	contributor.Phone = "555-0100"
	contributor.Address = "Arlington, VA"
	contributor.TotalEquityGranted = 12.5
	contributor.VestingPeriod = 4
	contributor.CliffDays = 365
	contributor.VestingExponent = 1.5
	contributor.DeferredWageRate = 200

	seed := sharecode.Decode(sharecode.Encode(founder, contributor))
	require.Equal(t, founder, seed.Founder)
	require.Equal(t, contributor, seed.Contributor)
}

func TestDecode_SingleFieldRoundTripKeepsDefaults(t *testing.T) {
	contributor := contract.DefaultContributor()
	contributor.VestingExponent = 0.75

	seed := sharecode.Decode(sharecode.Encode(contract.DefaultFounder(), contributor))
	require.Equal(t, contract.DefaultFounder(), seed.Founder)
	require.Equal(t, contributor, seed.Contributor)
}

func TestDecode_MalformedNumbersFallBack(t *testing.T) {
	seed := sharecode.Decode("?totalEquityGranted=abc&vestingPeriod=NaN&cliffDays=12.5" +
		"&vestingExponent=-2&founderDeferredWageRate=Inf&contributorDeferredWageRate=&contributorName=Grace")

	def := contract.DefaultContributor()
	require.Equal(t, def.TotalEquityGranted, seed.Contributor.TotalEquityGranted)
	require.Equal(t, def.VestingPeriod, seed.Contributor.VestingPeriod)
	require.Equal(t, def.CliffDays, seed.Contributor.CliffDays)
	require.Equal(t, def.VestingExponent, seed.Contributor.VestingExponent)
	require.Equal(t, def.DeferredWageRate, seed.Contributor.DeferredWageRate)
	require.Equal(t, contract.DefaultDeferredWageRate, seed.Founder.DeferredWageRate)
	require.Equal(t, "Grace", seed.Contributor.Name)
}

func TestDecode_RoundTripsBoundaryValues(t *testing.T) {
	c := contract.DefaultContributor()
	c.CliffDays = contract.MaxCliffDays
	c.VestingPeriod = vesting.MaxVestingPeriodYears
	seed := sharecode.Decode(sharecode.Encode(contract.DefaultFounder(), c))
	require.Equal(t, c, seed.Contributor)

	seed = sharecode.Decode("cliffDays=2147483648&vestingPeriod=1e15")
	def := contract.DefaultContributor()
	require.Equal(t, def.CliffDays, seed.Contributor.CliffDays)
	require.Equal(t, def.VestingPeriod, seed.Contributor.VestingPeriod)
}

func TestDecode_AcceptsFullURL(t *testing.T) {
	seed := sharecode.Decode("https://terms.example/agreement?founderName=Ada&totalEquityGranted=10#preview")
	require.Equal(t, "Ada", seed.Founder.Name)
	require.Equal(t, 10.0, seed.Contributor.TotalEquityGranted)
}

func TestDecode_EmptyQuery(t *testing.T) {
	require.Equal(t, contract.DefaultSeed(), sharecode.Decode(""))
}

func TestShareURL(t *testing.T) {
	founder := contract.DefaultFounder()
	founder.Name = "Ada"
	u, err := sharecode.ShareURL("https://terms.example/agreement?old=1#top", founder, contract.DefaultContributor())
	require.NoError(t, err)
	require.Equal(t, "https://terms.example/agreement?founderName=Ada", u)
}

func TestQuerySeeder_DecodesOnEveryCall(t *testing.T) {
	seeder := sharecode.QuerySeeder{Query: "contributorName=Grace"}
	store := contract.NewStore(seeder, nil, nil)
	require.Equal(t, "Grace", store.Contributor().Name)

	name := "Changed"
	_, err := store.UpdateContributor(contract.ContributorPatch{Name: &name})
	require.NoError(t, err)
	store.Reset()
	require.Equal(t, "Grace", store.Contributor().Name)
}
