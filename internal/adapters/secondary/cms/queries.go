package cms

const homePageQuery = `
query HomePage {
  stacks {
    id
    name
    image {
      url
      fileName
    }
  }
  applications {
    id
    name
    description
    image {
      url
      fileName
    }
    liveUrl
    sourceCodeUrl
    stacks {
      id
      name
      image {
        url
        fileName
      }
    }
  }
  achievements {
    id
    name
    description
    relevantLink
  }
  volunteers {
    id
    name
    description
    relevantLink
  }
  responsibilities {
    id
    name
    location
    description
    startDate
    endDate
    isOngoing
  }
}`

const pixWingQuery = `
query PixWingHomePage {
  stacks {
    id
    name
    image {
      url
      fileName
    }
  }
  visions {
    vId
    description
  }
  ourProducts {
    id
    description
    productId
  }
  corprateSocialRs {
    csrId
    desc
    title
  }
  ourCultures {
    title
    id_Culture
    description
  }
}`

const pingQuery = `query Ping { __typename }`
