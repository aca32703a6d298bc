//go:build e2e
// +build e2e

package e2e

import (
	memberModel "github.com/sauce1111/memberdir/internal/member/model"
	memberRepository "github.com/sauce1111/memberdir/internal/member/repository"
)

func (s *E2ETestSuite) TestLookupWithTeam() {
	s.seedDirectory()

	member, err := s.members.GetByUsernameWithTeam(s.ctx, "member1")
	s.Require().NoError(err)
	s.Equal(10, member.Age)
	s.Require().NotNil(member.Team)
	s.Equal("teamA", member.Team.Name)
}

func (s *E2ETestSuite) TestAmbiguousLookup() {
	s.seedDirectory()
	s.Require().NoError(s.members.Create(s.ctx, &memberModel.Member{
		Username: strPtr("member1"), Age: 99,
	}))

	_, err := s.members.GetByUsername(s.ctx, "member1")
	s.ErrorIs(err, memberModel.ErrAmbiguousMember)
}

func (s *E2ETestSuite) TestNullsLastOrdering() {
	s.seedDirectory()
	s.Require().NoError(s.members.CreateAll(s.ctx, []memberModel.Member{
		{Username: nil, Age: 100},
		{Username: strPtr("member5"), Age: 100},
		{Username: strPtr("member6"), Age: 100},
	}))

	members, err := s.members.ListByAgeOrdered(s.ctx, 100)
	s.Require().NoError(err)
	s.Require().Len(members, 3)
	s.Equal("member5", *members[0].Username)
	s.Equal("member6", *members[1].Username)
	s.Nil(members[2].Username)
}

func (s *E2ETestSuite) TestSubqueries() {
	s.seedDirectory()

	oldest, err := s.members.ListOldest(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(oldest, 1)
	s.Equal(40, oldest[0].Age)

	atLeastAvg, err := s.members.ListAgeAtLeastAverage(s.ctx)
	s.Require().NoError(err)
	s.Len(atLeastAvg, 2)

	older, err := s.members.ListAgeInOlderThan(s.ctx, 10)
	s.Require().NoError(err)
	s.Len(older, 3)
}

func (s *E2ETestSuite) TestDisplayNameConcat() {
	s.seedDirectory()

	names, err := s.members.ListDisplayNames(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(names, 4)

	found := make(map[string]bool)
	for _, n := range names {
		s.Require().NotNil(n)
		found[*n] = true
	}
	s.True(found["member1_10"])
	s.True(found["member4_40"])
}

func (s *E2ETestSuite) TestUsernameReplace() {
	s.seedDirectory()

	replaced, err := s.members.ListUsernamesReplaced(s.ctx, "member", "M")
	s.Require().NoError(err)
	s.Require().Len(replaced, 4)
	s.Require().NotNil(replaced[0])
	s.Equal("M1", *replaced[0])
}

func (s *E2ETestSuite) TestCaseExpressions() {
	s.seedDirectory()

	bands, err := s.members.ListAgeBandRanges(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(bands, 4)

	counts := make(map[string]int)
	for _, b := range bands {
		counts[b.Band]++
	}
	s.Equal(2, counts["0-20"])
	s.Equal(1, counts["21-30"])
	s.Equal(1, counts["other"])
}

func (s *E2ETestSuite) TestBulkOperations() {
	s.seedDirectory()

	affected, err := s.members.BulkRenameUnder(s.ctx, "guest", 28)
	s.Require().NoError(err)
	s.EqualValues(2, affected)

	guests, err := s.members.Search(s.ctx, memberRepository.UsernameEq(strPtr("guest")))
	s.Require().NoError(err)
	s.Len(guests, 2)

	affected, err = s.members.BulkScaleAge(s.ctx, 2)
	s.Require().NoError(err)
	s.EqualValues(4, affected)

	oldest, err := s.members.ListOldest(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(oldest, 1)
	s.Equal(80, oldest[0].Age)

	affected, err = s.members.BulkDeleteOlderThan(s.ctx, 30)
	s.Require().NoError(err)
	s.EqualValues(3, affected)

	total, err := s.members.Count(s.ctx)
	s.Require().NoError(err)
	s.EqualValues(1, total)
}

func (s *E2ETestSuite) TestStatisticsOnPostgres() {
	s.seedDirectory()

	agg, err := s.statistics.GetAgeAggregate(s.ctx)
	s.Require().NoError(err)
	s.EqualValues(4, agg.Count)
	s.EqualValues(100, agg.Sum)
	s.InDelta(25.0, agg.Average, 0.001)

	averages, err := s.statistics.GetTeamAverageAges(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(averages, 2)
	s.Equal("teamA", averages[0].TeamName)
	s.InDelta(15.0, averages[0].AverageAge, 0.001)
}

func (s *E2ETestSuite) TestUniqueTeamNameConstraint() {
	s.seedDirectory()

	_, err := s.teams.Create(s.ctx, "teamA")
	s.Error(err)
}
